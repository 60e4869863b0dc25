package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ---------------------------------------------------------------------------
// Google Cloud Text-to-Speech Service
// Uses the REST endpoint with an API key. Response audio arrives base64
// encoded inside a JSON envelope.
// ---------------------------------------------------------------------------

const googleTTSEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleTTSService handles text-to-speech via Google Cloud TTS.
type GoogleTTSService struct {
	apiKey string
	client *http.Client
}

// Ensure GoogleTTSService implements Synthesizer at compile time.
var _ Synthesizer = (*GoogleTTSService)(nil)

func NewGoogleTTSService(apiKey string) *GoogleTTSService {
	return &GoogleTTSService{
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Request/response types for the REST API.

type googleTTSRequest struct {
	Input       googleTTSInput       `json:"input"`
	Voice       googleTTSVoice       `json:"voice"`
	AudioConfig googleTTSAudioConfig `json:"audioConfig"`
}

type googleTTSInput struct {
	Text string `json:"text,omitempty"`
	SSML string `json:"ssml,omitempty"`
}

type googleTTSVoice struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name,omitempty"`
	SSMLGender   string `json:"ssmlGender,omitempty"`
}

type googleTTSAudioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate,omitempty"`
	Pitch         float64 `json:"pitch,omitempty"`
	VolumeGainDb  float64 `json:"volumeGainDb,omitempty"`
}

type googleTTSResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize converts text to audio bytes. Implements the Synthesizer
// interface.
func (s *GoogleTTSService) Synthesize(ctx context.Context, text string, params VoiceParams) ([]byte, error) {
	reqBody := googleTTSRequest{
		Voice: googleTTSVoice{
			LanguageCode: params.LanguageCode,
			Name:         params.VoiceName,
			SSMLGender:   params.Gender,
		},
		AudioConfig: googleTTSAudioConfig{
			AudioEncoding: params.Encoding,
			SpeakingRate:  params.SpeakingRate,
			Pitch:         params.Pitch,
			VolumeGainDb:  params.VolumeGainDb,
		},
	}
	if params.UseSSML {
		reqBody.Input.SSML = text
	} else {
		reqBody.Input.Text = text
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TTS request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", googleTTSEndpoint, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("[GoogleTTS] Synthesizing (voice=%s, lang=%s, encoding=%s, textLen=%d)",
		params.VoiceName, params.LanguageCode, params.Encoding, len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("google TTS returned status %d: %s", resp.StatusCode, string(body))
	}

	var result googleTTSResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse TTS response: %w", err)
	}

	audioData, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TTS audio: %w", err)
	}
	if len(audioData) == 0 {
		return nil, fmt.Errorf("google TTS returned empty audio")
	}

	log.Printf("[GoogleTTS] Speech generated (%d bytes)", len(audioData))

	return audioData, nil
}
