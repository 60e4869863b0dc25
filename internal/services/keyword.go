package services

import (
	"context"
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Keyword Classifier
// Offline NLU backend selected with CLASSIFIER_PROVIDER=keyword. Matches
// utterances against fixed word lists and script ranges instead of calling
// a model, so it works without any API key. Intended for local development
// and tests.
// ---------------------------------------------------------------------------

type KeywordClassifier struct{}

// Ensure KeywordClassifier implements Classifier at compile time.
var _ Classifier = (*KeywordClassifier)(nil)

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var affirmativeTokens = map[string]bool{
	"yes":        true,
	"yeah":       true,
	"yup":        true,
	"sure":       true,
	"okay":       true,
	"ok":         true,
	"haan":       true,
	"han":        true,
	"ji":         true,
	"bilkul":     true,
	"theek":      true,
	"correct":    true,
	"right":      true,
	"definitely": true,
}

var goodbyePhrases = []string{
	"bye",
	"goodbye",
	"thank you",
	"dhanyawad",
	"alvida",
	"that's all",
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// tokenize lowercases the utterance and splits it into words, dropping
// punctuation so "haan, ji!" matches the same as "haan ji".
func tokenize(utterance string) []string {
	lowered := strings.ToLower(utterance)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

func (c *KeywordClassifier) IsAffirmative(ctx context.Context, utterance string) (bool, error) {
	if strings.Contains(strings.ToLower(utterance), "of course") {
		return true, nil
	}
	for _, token := range tokenize(utterance) {
		if affirmativeTokens[token] {
			return true, nil
		}
	}
	return false, nil
}

func (c *KeywordClassifier) IsGoodbye(ctx context.Context, utterance string) (bool, error) {
	lowered := strings.ToLower(utterance)
	for _, phrase := range goodbyePhrases {
		if strings.Contains(lowered, phrase) {
			return true, nil
		}
	}
	return false, nil
}

// ExtractDates only recognizes dates already spoken in YYYY-MM-DD form. The
// date resolver downstream handles everything else, including the fallback
// when this returns "None".
func (c *KeywordClassifier) ExtractDates(ctx context.Context, utterance string) (string, error) {
	matches := isoDatePattern.FindAllString(utterance, -1)
	if len(matches) == 0 {
		return "None", nil
	}
	return strings.Join(matches, ", "), nil
}

// DetectLanguage inspects the script of the text. Devanagari maps to Hindi
// and Gujarati script to Gujarati; anything else is treated as English.
func (c *KeywordClassifier) DetectLanguage(ctx context.Context, text string) (string, error) {
	for _, r := range text {
		switch {
		case r >= 0x0900 && r <= 0x097F:
			return "hi-IN", nil
		case r >= 0x0A80 && r <= 0x0AFF:
			return "gu-IN", nil
		}
	}
	return "en-US", nil
}
