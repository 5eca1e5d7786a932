package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meetscribe/internal/config"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF fake wav payload"), 0644); err != nil {
		t.Fatalf("writing test audio: %v", err)
	}
	return path
}

func TestNewBackendSelection(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr bool
	}{
		{"whisperd", "whisperd", false},
		{"empty defaults to whisperd", "", false},
		{"openai", "openai", false},
		{"unknown", "deepspeech", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.STTConfig{Backend: tt.backend, URL: "http://127.0.0.1:9000", Model: "whisper-1"}
			engine, err := New(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if engine != nil {
				engine.Close()
			}
		})
	}
}

func TestWhisperdTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("path = %q, want /v1/audio/transcriptions", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q, want verbose_json", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "Hello there. How are you?",
			"segments": [
				{"start": 0.0, "end": 2.5, "text": " Hello there."},
				{"start": 2.5, "end": 5.0, "text": " How are you?"}
			]
		}`))
	}))
	defer srv.Close()

	engine := NewWhisperdEngine(srv.URL)
	defer engine.Close()

	segments, err := engine.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Start != 0.0 || segments[0].End != 2.5 {
		t.Errorf("segments[0] span = (%v, %v), want (0, 2.5)", segments[0].Start, segments[0].End)
	}
	if segments[1].Text != " How are you?" {
		t.Errorf("segments[1].Text = %q", segments[1].Text)
	}
}

func TestWhisperdTranscribeTextOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "short clip"}`))
	}))
	defer srv.Close()

	engine := NewWhisperdEngine(srv.URL)
	defer engine.Close()

	segments, err := engine.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "short clip" {
		t.Fatalf("segments = %+v, want single text-only segment", segments)
	}
}

func TestWhisperdRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"text": "", "segments": [{"start": 0, "end": 1, "text": "ok"}]}`))
	}))
	defer srv.Close()

	engine := NewWhisperdEngine(srv.URL)
	engine.maxElapsed = 5 * time.Second
	defer engine.Close()

	segments, err := engine.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if attempts < 3 {
		t.Errorf("attempts = %d, want at least 3", attempts)
	}
	if len(segments) != 1 || segments[0].Text != "ok" {
		t.Errorf("segments = %+v", segments)
	}
}

func TestWhisperdClientErrorNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "bad audio format", http.StatusBadRequest)
	}))
	defer srv.Close()

	engine := NewWhisperdEngine(srv.URL)
	defer engine.Close()

	_, err := engine.Transcribe(context.Background(), writeTestAudio(t))
	if err == nil {
		t.Fatal("Transcribe() should fail on HTTP 400")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (4xx must not be retried)", attempts)
	}
	if !strings.Contains(err.Error(), "bad audio format") {
		t.Errorf("error should carry server detail, got %v", err)
	}
}

func TestOpenAIRequiresKey(t *testing.T) {
	engine := NewOpenAIEngine("", "whisper-1")
	defer engine.Close()

	_, err := engine.Transcribe(context.Background(), writeTestAudio(t))
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("Transcribe() without key should mention OPENAI_API_KEY, got %v", err)
	}
}

func TestOpenAISendsAuthAndModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer sk-test")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q, want whisper-1", got)
		}
		w.Write([]byte(`{"text": "", "segments": []}`))
	}))
	defer srv.Close()

	engine := NewOpenAIEngine("sk-test", "whisper-1")
	engine.endpoint = srv.URL
	defer engine.Close()

	segments, err := engine.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("got %d segments, want 0 for silent audio", len(segments))
	}
}
