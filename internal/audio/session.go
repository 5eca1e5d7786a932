package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"meetscribe/internal/config"
)

// Canonical channel filenames inside a session directory.
const (
	MicFilename    = "microphone_audio.wav"
	SystemFilename = "system_audio.wav"
)

// Session records the two meeting channels — microphone and system
// output — concurrently, each channel owning its own capture device and
// output file. The only cross-channel signal is the shared context:
// cancellation stops both captures, with stop latency bounded by one
// capture buffer.
type Session struct {
	ID         string
	Dir        string
	MicPath    string
	SystemPath string

	cfg config.AudioConfig
}

// NewSession creates the session directory under baseDir and prepares
// the channel file paths.
func NewSession(cfg config.AudioConfig, baseDir string) (*Session, error) {
	id := uuid.New().String()
	dir := filepath.Join(baseDir, "sessions", id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audio: creating session directory: %w", err)
	}

	return &Session{
		ID:         id,
		Dir:        dir,
		MicPath:    filepath.Join(dir, MicFilename),
		SystemPath: filepath.Join(dir, SystemFilename),
		cfg:        cfg,
	}, nil
}

// Record captures both channels until ctx is canceled, then flushes each
// channel to its own WAV file. It blocks for the duration of the
// recording.
func (s *Session) Record(ctx context.Context) error {
	channels := []struct {
		name   string
		device string
		path   string
	}{
		{"microphone", s.cfg.MicDevice, s.MicPath},
		{"system", s.cfg.SystemDevice, s.SystemPath},
	}

	errs := make([]error, len(channels))
	var wg sync.WaitGroup
	for i, ch := range channels {
		i, ch := i, ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.recordChannel(ctx, ch.device, ch.path); err != nil {
				errs[i] = fmt.Errorf("audio: %s channel: %w", ch.name, err)
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// recordChannel captures one device until ctx is canceled and writes the
// samples to path.
func (s *Session) recordChannel(ctx context.Context, device, path string) error {
	rec, err := NewRecorder(s.cfg.SampleRate, s.cfg.Channels, device)
	if err != nil {
		return err
	}
	defer rec.Close()

	if err := rec.Start(); err != nil {
		return err
	}

	<-ctx.Done()

	samples := rec.Stop()
	return WriteWAV(path, samples, s.cfg.SampleRate, s.cfg.Channels)
}
