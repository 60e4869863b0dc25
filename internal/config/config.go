package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	APIPort            string
	AdminAPIKey        string // API key for /v1 admin routes (empty = no auth, dev mode)
	CorsAllowedOrigins string // Comma-separated allowed origins (empty = *, dev mode)

	// Database
	DatabaseURL string

	// Audio cache
	AudioCacheBackend string // "fs" or "redis"
	AudioCacheDir     string
	AudioCacheEnabled bool
	RedisURL          string

	// Google Cloud TTS (preferred synthesis backend)
	GoogleTTSKey string

	// ElevenLabs (fallback synthesis backend — used when the Google key is not set)
	ElevenLabsKey     string
	ElevenLabsVoiceID string

	// Speech-intent classifier
	ClassifierProvider string // "gemini", "openai", or "keyword"
	GeminiKey          string
	OpenAIKey          string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		AudioCacheBackend:  getEnv("AUDIO_CACHE_BACKEND", "fs"),
		AudioCacheDir:      getEnv("AUDIO_CACHE_DIR", "static/audio_cache"),
		AudioCacheEnabled:  getEnvBool("AUDIO_CACHE_ENABLED", true),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		GoogleTTSKey:       getEnv("GOOGLE_TTS_API_KEY", ""),
		ElevenLabsKey:      getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID:  getEnv("ELEVENLABS_VOICE_ID", ""),
		ClassifierProvider: getEnv("CLASSIFIER_PROVIDER", "gemini"),
		GeminiKey:          getEnv("GEMINI_API_KEY", ""),
		OpenAIKey:          getEnv("OPENAI_API_KEY", ""),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	switch cfg.ClassifierProvider {
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when CLASSIFIER_PROVIDER=gemini")
		}
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when CLASSIFIER_PROVIDER=openai")
		}
	case "keyword":
		// offline heuristic, no key needed
	default:
		return nil, fmt.Errorf("unknown CLASSIFIER_PROVIDER %q (allowed: gemini, openai, keyword)", cfg.ClassifierProvider)
	}

	// At least one synthesis backend must be configured
	if cfg.GoogleTTSKey == "" && cfg.ElevenLabsKey == "" {
		return nil, fmt.Errorf("either GOOGLE_TTS_API_KEY or ELEVENLABS_API_KEY is required for TTS")
	}

	if cfg.AudioCacheBackend != "fs" && cfg.AudioCacheBackend != "redis" {
		return nil, fmt.Errorf("unknown AUDIO_CACHE_BACKEND %q (allowed: fs, redis)", cfg.AudioCacheBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}
