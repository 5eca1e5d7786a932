// Package diarize segments an audio file into speaker turns via a
// diarization sidecar service (typically pyannote behind a small HTTP
// wrapper). Turn labels are engine-internal and carry no meaning beyond
// identity within a single run.
package diarize

import (
	"context"

	"meetscribe/internal/config"
)

// Turn is a time interval attributed to one (anonymous) speaker.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Engine segments an audio file into speaker turns.
type Engine interface {
	// Diarize processes the audio file at the given path and returns
	// speaker turns in chronological order.
	Diarize(ctx context.Context, audioPath string) ([]Turn, error)
	// Close releases backend resources.
	Close() error
}

// New creates an Engine for the configured sidecar.
func New(cfg *config.DiarizeConfig) (Engine, error) {
	return NewSidecarEngine(cfg.URL), nil
}
