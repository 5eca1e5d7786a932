package diarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// SidecarEngine talks to a diarization HTTP sidecar exposing POST /diarize.
type SidecarEngine struct {
	baseURL    string
	hc         *http.Client
	maxElapsed time.Duration
}

// NewSidecarEngine creates an engine for the sidecar at baseURL.
func NewSidecarEngine(baseURL string) *SidecarEngine {
	return &SidecarEngine{
		baseURL:    strings.TrimRight(baseURL, "/"),
		hc:         &http.Client{Timeout: 10 * time.Minute},
		maxElapsed: 30 * time.Second,
	}
}

type diarizeResponse struct {
	Segments []Turn `json:"segments"`
}

// Diarize uploads the audio file and returns its speaker turns.
func (e *SidecarEngine) Diarize(ctx context.Context, audioPath string) ([]Turn, error) {
	var result diarizeResponse

	op := func() error {
		body, contentType, err := buildUpload(audioPath)
		if err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/diarize", body)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)

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
		if err := json.Unmarshal(respBody, &result); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = e.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("diarize: sidecar %q: %w", audioPath, err)
	}

	return result.Segments, nil
}

// Close releases backend resources.
func (e *SidecarEngine) Close() error {
	e.hc.CloseIdleConnections()
	return nil
}

func buildUpload(audioPath string) (io.Reader, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &body, mw.FormDataContentType(), nil
}
