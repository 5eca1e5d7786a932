package stt

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// WhisperdEngine talks to a local OpenAI-compatible whisper server
// (e.g. faster-whisper-server or whisper.cpp's server binary).
type WhisperdEngine struct {
	baseURL    string
	hc         *http.Client
	maxElapsed time.Duration
}

// NewWhisperdEngine creates an engine for the whisperd server at baseURL.
func NewWhisperdEngine(baseURL string) *WhisperdEngine {
	return &WhisperdEngine{
		baseURL:    strings.TrimRight(baseURL, "/"),
		hc:         &http.Client{Timeout: 10 * time.Minute},
		maxElapsed: 30 * time.Second,
	}
}

// Transcribe uploads the audio file and returns its timed segments.
func (e *WhisperdEngine) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	endpoint := e.baseURL + "/v1/audio/transcriptions"
	segments, err := transcribeUpload(ctx, e.hc, endpoint, "", "", audioPath, e.maxElapsed)
	if err != nil {
		return nil, fmt.Errorf("stt: whisperd transcribe %q: %w", audioPath, err)
	}
	return segments, nil
}

// Close releases backend resources.
func (e *WhisperdEngine) Close() error {
	e.hc.CloseIdleConnections()
	return nil
}
