package transcribe

import (
	"context"
	"fmt"

	"tala/internal/audio"
)

// Item is one transcribed phrase. Timestamps arrive as timecode strings
// (HH:MM:SS,mmm) and are parsed into seconds when mapped onto the document.
type Item struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Speaker    string  `json:"speaker,omitempty"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence,omitempty"`
}

// transcription result
type Result struct {
	Language string
	Items    []Item
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, enc *audio.EncodedAudio) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderGemini Provider = "gemini"
)

// transcription options
type Options struct {
	Language string // Source language of audio, if known
	Model    string
	Prompt   string
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
