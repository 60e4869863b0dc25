package services

import (
	"context"
	"strings"
)

// ---------------------------------------------------------------------------
// Classifier — the speech-intent NLU consumed by the call flow
// All methods take one caller utterance and return a terse categorical
// answer. The call flow treats the answers as oracle output and supplies
// its own safe defaults when a call fails, so implementations should
// return errors rather than guess.
// ---------------------------------------------------------------------------

type Classifier interface {
	// IsAffirmative reports whether the utterance clearly means yes.
	IsAffirmative(ctx context.Context, utterance string) (bool, error)

	// IsGoodbye reports whether the utterance asks to end the conversation.
	IsGoodbye(ctx context.Context, utterance string) (bool, error)

	// ExtractDates returns the dates mentioned in the utterance as
	// "YYYY-MM-DD" (comma-separated when several), or "None".
	ExtractDates(ctx context.Context, utterance string) (string, error)

	// DetectLanguage returns the TTS language code for the text's language.
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Strict-output instructions shared by the model-backed classifiers. The
// transcripts are Hinglish, so every prompt allows mixed-language input.

const affirmativePrompt = `You are a helpful assistant.

Determine if the user's most recent message is an affirmative confirmation such as:
- 'yes'
- 'yeah'
- 'yup'
- 'uh-huh'
- 'sure'
- 'definitely'
- 'of course'
- 'okay'
- 'haan'
- 'ji haan'
- or similar.

Return ONLY 'True' if the message clearly means yes.
Return ONLY 'False' if it does NOT clearly mean yes.

Do NOT return anything else. Only output 'True' or 'False'.`

const goodbyePrompt = `Analyze the user's message and determine if they want to end the conversation.
Respond with ONLY 'True' if the message clearly indicates ending the conversation
(e.g., 'bye', 'goodbye', 'that's all', 'thank you', 'end chat', etc.).
Respond with ONLY 'False' if the message doesn't indicate ending the conversation.
Do not add any explanations or other text.`

const dateExtractionPrompt = `You are a helpful assistant.

Extract the date or dates mentioned in the user's message.
The user may speak in English, Hindi, or a mix of both.
Return ONLY the date(s) in a standard, unambiguous format (YYYY-MM-DD if possible).
If multiple dates are present, return them as a comma-separated list.
If no date is found, return "None".

Do NOT return any explanations or extra text.

---
Examples:

- User: "Can you reschedule my appointment to 5th September 2025?"
- Output: 2025-09-05

- User: "I am available on 12/10/2025 or 15/10/2025."
- Output: 2025-10-12, 2025-10-15

- User: "कोई तारीख नहीं चाहिए।"
- Output: None
---`

const languageDetectionPrompt = `Analyze the user's message to identify the language it is written in.

Strictly return ONLY the corresponding Google TTS language code as per the following mapping:

- Hindi -> hi-IN
- Gujarati -> gu-IN
- English -> en-US
- French -> fr-FR
- Spanish -> es-ES

Do not include any explanations, greetings, or other text.

---
Examples:

- User Input: "Hello, I would like to know more about your services."
- Your Output: en-US

- User Input: "नमस्ते, आप कैसे हैं?"
- Your Output: hi-IN

- User Input: "Mujhe service reschedule karni hai."
- Your Output: hi-IN

- User Input: "કેમ છો?"
- Your Output: gu-IN
---`

// checkMessage frames an utterance for the yes/goodbye prompts.
func checkMessage(utterance string) string {
	return "check:\n\n" + utterance
}

// parseBoolAnswer maps a model's 'True'/'False' reply onto a bool. Anything
// that is not exactly an affirmative True counts as false.
func parseBoolAnswer(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}
