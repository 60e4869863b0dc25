package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarthi-tvs/callagent/internal/api"
	"github.com/sarthi-tvs/callagent/internal/callflow"
	"github.com/sarthi-tvs/callagent/internal/config"
	"github.com/sarthi-tvs/callagent/internal/db"
	"github.com/sarthi-tvs/callagent/internal/services"
	"github.com/sarthi-tvs/callagent/internal/storage"
	"github.com/sarthi-tvs/callagent/internal/ttscache"
)

func main() {
	log.Println("Starting Sarthi TVS call agent...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	log.Println("Connected to database")

	// Initialize the audio artifact store
	var store storage.Store
	switch cfg.AudioCacheBackend {
	case "redis":
		redisStore, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		store = redisStore
		log.Println("Audio cache backend: redis")
	default:
		fsStore, err := storage.NewFSStore(cfg.AudioCacheDir)
		if err != nil {
			log.Fatalf("Failed to create cache directory: %v", err)
		}
		store = fsStore
		log.Printf("Audio cache backend: fs (%s)", cfg.AudioCacheDir)
	}

	// Initialize the synthesizer — Google Cloud TTS preferred, ElevenLabs fallback
	var synth services.Synthesizer
	var ttsStatus string
	if cfg.GoogleTTSKey != "" {
		synth = services.NewGoogleTTSService(cfg.GoogleTTSKey)
		ttsStatus = "google_cloud_tts_enabled"
		log.Println("TTS provider: Google Cloud TTS")
	} else {
		synth = services.NewElevenLabsServiceWithVoice(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID)
		ttsStatus = "elevenlabs_enabled"
		log.Printf("TTS provider: ElevenLabs (voice: %s)", cfg.ElevenLabsVoiceID)
	}

	// Initialize the speech-intent classifier
	var classifier services.Classifier
	switch cfg.ClassifierProvider {
	case "openai":
		classifier = services.NewOpenAIService(cfg.OpenAIKey)
		log.Println("Classifier provider: OpenAI")
	case "keyword":
		classifier = services.NewKeywordClassifier()
		log.Println("Classifier provider: keyword (offline)")
	default:
		geminiSvc, err := services.NewGeminiService(context.Background(), cfg.GeminiKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		classifier = geminiSvc
		log.Println("Classifier provider: Gemini")
	}

	// Speech cache fronting the synthesizer
	cache := ttscache.New(synth, store, cfg.AudioCacheEnabled)
	if !cfg.AudioCacheEnabled {
		log.Println("WARNING: Audio caching disabled — every prompt will be synthesized fresh")
	}

	// Conversation state machine
	flow := callflow.New(classifier, database, cache)

	// Create API handler
	handler := api.NewHandler(flow, cache, store, ttsStatus)
	router := api.NewRouter(handler, api.RouterConfig{
		AdminAPIKey:        cfg.AdminAPIKey,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
	})

	if cfg.AdminAPIKey != "" {
		log.Println("Cache admin authentication enabled")
	} else {
		log.Println("WARNING: No ADMIN_API_KEY set — cache admin routes are unprotected (dev mode)")
	}

	// Start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Call agent listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
