// Package summarize produces a short narrative summary of a transcript
// via an abstractive summarization service. Unlike transcription and
// diarization, a summarizer failure is fatal to report generation and
// is never papered over with an empty result.
package summarize

import (
	"context"

	"meetscribe/internal/config"
)

// Engine condenses plain text into a short narrative summary.
type Engine interface {
	// Summarize returns a narrative summary of the given text.
	Summarize(ctx context.Context, text string) (string, error)
	// Close releases backend resources.
	Close() error
}

// New creates an Engine for the configured summarization service.
func New(cfg *config.SummarizeConfig) (Engine, error) {
	return NewBartEngine(cfg.URL, cfg.MinLength, cfg.MaxLength), nil
}
