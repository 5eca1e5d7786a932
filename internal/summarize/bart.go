package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// BartEngine calls a Hugging Face style text2text summarization endpoint
// (a transformers pipeline behind HTTP). The response is a JSON array of
// chunks, one summary_text per chunk for long inputs.
type BartEngine struct {
	baseURL    string
	minLength  int
	maxLength  int
	hc         *http.Client
	maxElapsed time.Duration
}

// NewBartEngine creates an engine for the summarizer at baseURL with the
// given output length bounds (in tokens).
func NewBartEngine(baseURL string, minLength, maxLength int) *BartEngine {
	return &BartEngine{
		baseURL:    strings.TrimRight(baseURL, "/"),
		minLength:  minLength,
		maxLength:  maxLength,
		hc:         &http.Client{Timeout: 5 * time.Minute},
		maxElapsed: 30 * time.Second,
	}
}

type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
}

type summarizeParameters struct {
	MinLength int  `json:"min_length"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

type summaryChunk struct {
	SummaryText string `json:"summary_text"`
}

// Summarize posts the text and joins the returned chunks into one summary.
func (e *BartEngine) Summarize(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(summarizeRequest{
		Inputs: text,
		Parameters: summarizeParameters{
			MinLength: e.minLength,
			MaxLength: e.maxLength,
			DoSample:  false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: encoding request: %w", err)
	}

	var chunks []summaryChunk

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("request rejected (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
		}
		if err := json.Unmarshal(respBody, &chunks); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = e.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.SummaryText)
	}
	return strings.Join(parts, " "), nil
}

// Close releases backend resources.
func (e *BartEngine) Close() error {
	e.hc.CloseIdleConnections()
	return nil
}
