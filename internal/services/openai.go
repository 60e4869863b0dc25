package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ---------------------------------------------------------------------------
// OpenAI Classifier
// Alternate NLU backend selected with CLASSIFIER_PROVIDER=openai. Same
// prompts as the Gemini backend, answered via chat completions.
// ---------------------------------------------------------------------------

const openAIModel = "gpt-4o-mini"

type OpenAIService struct {
	client *openai.Client
}

// Ensure OpenAIService implements Classifier at compile time.
var _ Classifier = (*OpenAIService)(nil)

func NewOpenAIService(apiKey string) *OpenAIService {
	return &OpenAIService{
		client: openai.NewClient(apiKey),
	}
}

// ask sends one user message under a system prompt and returns the model's
// trimmed text reply.
func (s *OpenAIService) ask(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMessage,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("empty response from openai")
	}

	return answer, nil
}

func (s *OpenAIService) IsAffirmative(ctx context.Context, utterance string) (bool, error) {
	answer, err := s.ask(ctx, affirmativePrompt, checkMessage(utterance))
	if err != nil {
		return false, err
	}
	log.Printf("[OpenAI] affirmative(%q) = %s", utterance, answer)
	return parseBoolAnswer(answer), nil
}

func (s *OpenAIService) IsGoodbye(ctx context.Context, utterance string) (bool, error) {
	answer, err := s.ask(ctx, goodbyePrompt, checkMessage(utterance))
	if err != nil {
		return false, err
	}
	return parseBoolAnswer(answer), nil
}

func (s *OpenAIService) ExtractDates(ctx context.Context, utterance string) (string, error) {
	answer, err := s.ask(ctx, dateExtractionPrompt, utterance)
	if err != nil {
		return "", err
	}
	log.Printf("[OpenAI] dates(%q) = %s", utterance, answer)
	return answer, nil
}

func (s *OpenAIService) DetectLanguage(ctx context.Context, text string) (string, error) {
	return s.ask(ctx, languageDetectionPrompt, text)
}
