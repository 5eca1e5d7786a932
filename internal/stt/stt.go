// Package stt provides speech-to-text backends.
//
// Supported backends:
//   - whisperd: an OpenAI-compatible local whisper server (default)
//   - openai: the OpenAI audio transcription API
//
// Both return timed segments against the recording's zero point.
package stt

import (
	"context"
	"fmt"
	"os"

	"meetscribe/internal/config"
)

// Segment is a timed span of recognized speech from one audio channel.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Engine converts an audio file to timed text segments.
type Engine interface {
	// Transcribe processes the audio file at the given path and returns
	// the recognized segments in chronological order.
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
	// Close releases backend resources.
	Close() error
}

// New creates an Engine based on the config backend setting.
func New(cfg *config.STTConfig) (Engine, error) {
	switch cfg.Backend {
	case "openai":
		return NewOpenAIEngine(os.Getenv("OPENAI_API_KEY"), cfg.Model), nil
	case "whisperd", "":
		return NewWhisperdEngine(cfg.URL), nil
	default:
		return nil, fmt.Errorf("stt: unknown backend %q (supported: whisperd, openai)", cfg.Backend)
	}
}
