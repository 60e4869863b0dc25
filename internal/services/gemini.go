package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// ---------------------------------------------------------------------------
// Gemini Classifier
// Default NLU backend, using the Google Gen AI SDK. Every question is a
// single-turn generation with a strict-output system instruction and
// temperature 0, so the reply is one short categorical token.
// ---------------------------------------------------------------------------

const geminiModel = "gemini-2.5-flash"

type GeminiService struct {
	client *genai.Client
}

// Ensure GeminiService implements Classifier at compile time.
var _ Classifier = (*GeminiService)(nil)

func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiService{client: client}, nil
}

// ask sends one user message under a system instruction and returns the
// model's trimmed text reply.
func (s *GeminiService) ask(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: userMessage}},
	}}

	resp, err := s.client.Models.GenerateContent(ctx, geminiModel, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				b.WriteString(part.Text)
			}
		}
		break // only the first candidate matters
	}

	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", fmt.Errorf("no response from gemini")
	}

	return answer, nil
}

func (s *GeminiService) IsAffirmative(ctx context.Context, utterance string) (bool, error) {
	answer, err := s.ask(ctx, affirmativePrompt, checkMessage(utterance))
	if err != nil {
		return false, err
	}
	log.Printf("[Gemini] affirmative(%q) = %s", utterance, answer)
	return parseBoolAnswer(answer), nil
}

func (s *GeminiService) IsGoodbye(ctx context.Context, utterance string) (bool, error) {
	answer, err := s.ask(ctx, goodbyePrompt, checkMessage(utterance))
	if err != nil {
		return false, err
	}
	return parseBoolAnswer(answer), nil
}

func (s *GeminiService) ExtractDates(ctx context.Context, utterance string) (string, error) {
	answer, err := s.ask(ctx, dateExtractionPrompt, utterance)
	if err != nil {
		return "", err
	}
	log.Printf("[Gemini] dates(%q) = %s", utterance, answer)
	return answer, nil
}

func (s *GeminiService) DetectLanguage(ctx context.Context, text string) (string, error) {
	return s.ask(ctx, languageDetectionPrompt, text)
}
