package services

import "context"

// ---------------------------------------------------------------------------
// Synthesizer — common interface for text-to-speech backends
// Google Cloud TTS is preferred; ElevenLabs is the fallback when no Google
// key is configured. The speech cache uses whichever is wired in without
// knowing the underlying provider.
// ---------------------------------------------------------------------------

// Audio encodings accepted in VoiceParams. The cache derives the artifact
// file extension from the encoding.
const (
	EncodingMP3      = "MP3"
	EncodingLinear16 = "LINEAR16"
	EncodingOggOpus  = "OGG_OPUS"
	EncodingMulaw    = "MULAW"
	EncodingAlaw     = "ALAW"
)

// Default voice: Hindi, the primary language of the call scripts.
const (
	DefaultLanguageCode = "hi-IN"
	defaultVoiceName    = "hi-IN-Chirp3-HD-Sulafat"
	defaultGender       = "FEMALE"
)

// VoiceParams carries every knob that affects the synthesized audio. The
// full set feeds the cache key, so two requests differing in any field
// resolve to different artifacts.
type VoiceParams struct {
	VoiceName    string
	LanguageCode string
	Gender       string // MALE, FEMALE or NEUTRAL
	Encoding     string
	SpeakingRate float64
	Pitch        float64
	VolumeGainDb float64
	UseSSML      bool
}

// DefaultVoiceParams returns the standard Hindi voice used for call prompts.
func DefaultVoiceParams() VoiceParams {
	return VoiceParams{
		VoiceName:    defaultVoiceName,
		LanguageCode: DefaultLanguageCode,
		Gender:       defaultGender,
		Encoding:     EncodingMP3,
		SpeakingRate: 1.0,
	}
}

// VoiceFor returns the voice parameters for a detected prompt language.
// The default Hindi voice is pinned by name; other languages select by
// language code and gender and let the backend pick a concrete voice.
func VoiceFor(languageCode string) VoiceParams {
	params := DefaultVoiceParams()
	if languageCode != "" && languageCode != DefaultLanguageCode {
		params.VoiceName = ""
		params.LanguageCode = languageCode
	}
	return params
}

// Synthesizer is the interface any TTS backend must implement. It returns
// the raw audio bytes; persistence and caching live above this layer.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, params VoiceParams) ([]byte, error)
}
