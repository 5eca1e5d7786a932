package stt

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// OpenAIEngine transcribes audio via the OpenAI transcription API.
type OpenAIEngine struct {
	apiKey     string
	model      string
	endpoint   string
	hc         *http.Client
	maxElapsed time.Duration
}

// NewOpenAIEngine creates an engine using the given API key and model.
func NewOpenAIEngine(apiKey, model string) *OpenAIEngine {
	return &OpenAIEngine{
		apiKey:     apiKey,
		model:      model,
		endpoint:   openAIEndpoint,
		hc:         &http.Client{Timeout: 10 * time.Minute},
		maxElapsed: 30 * time.Second,
	}
}

// Transcribe uploads the audio file and returns its timed segments.
func (e *OpenAIEngine) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("stt: openai API key not set (set OPENAI_API_KEY)")
	}
	segments, err := transcribeUpload(ctx, e.hc, e.endpoint, e.apiKey, e.model, audioPath, e.maxElapsed)
	if err != nil {
		return nil, fmt.Errorf("stt: openai transcribe %q: %w", audioPath, err)
	}
	return segments, nil
}

// Close releases backend resources.
func (e *OpenAIEngine) Close() error {
	e.hc.CloseIdleConnections()
	return nil
}
