// Package pipeline runs the post-meeting processing stages in order:
// transcribe both channels, diarize the system channel, merge into one
// transcript, compose the report, persist the artifacts.
//
// Transcription and diarization failures are contained: the stage
// degrades to an empty result and the merge simply has less data to work
// with. A summarizer failure aborts report generation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"meetscribe/internal/diarize"
	"meetscribe/internal/logger"
	"meetscribe/internal/report"
	"meetscribe/internal/stt"
	"meetscribe/internal/summarize"
	"meetscribe/internal/transcript"
)

// Pipeline holds the collaborator engines and output location.
type Pipeline struct {
	STT        stt.Engine
	Diarizer   diarize.Engine
	Summarizer summarize.Engine
	OutputDir  string
	Log        *logger.Logger
}

// Result carries the produced artifacts and where they were written.
type Result struct {
	Entries        []transcript.Entry
	Transcript     string
	Summary        string
	TranscriptPath string
	SummaryPath    string
}

// Process runs the full pipeline over the two recorded channel files.
func (p *Pipeline) Process(ctx context.Context, micPath, systemPath string) (*Result, error) {
	log := p.Log.WithField("run_id", uuid.New().String())

	mic := p.transcribeChannel(ctx, log, "microphone", micPath)
	system := p.transcribeChannel(ctx, log, "system", systemPath)

	turns, err := p.Diarizer.Diarize(ctx, systemPath)
	if err != nil {
		// Contained: merge proceeds without speaker turns.
		log.WithField("component", "diarize").WithError(err).Warn("diarization failed, continuing without speaker turns")
		turns = nil
	}
	log.WithFields(logrus.Fields{
		"mic_segments":    len(mic),
		"system_segments": len(system),
		"speaker_turns":   len(turns),
	}).Info("merging channels")

	entries := transcript.Merge(mic, system, turns)
	text := transcript.Render(entries)

	summary, err := report.Compose(ctx, p.Summarizer, text)
	if err != nil {
		// Not contained: a fabricated summary would be worse than none.
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	result := &Result{
		Entries:    entries,
		Transcript: text,
		Summary:    summary,
	}
	if err := p.save(result); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	log.WithFields(logrus.Fields{
		"entries":         len(entries),
		"transcript_path": result.TranscriptPath,
		"summary_path":    result.SummaryPath,
	}).Info("processing complete")

	return result, nil
}

// transcribeChannel transcribes one channel, containing failures as an
// empty segment list.
func (p *Pipeline) transcribeChannel(ctx context.Context, log *logrus.Entry, channel, path string) []stt.Segment {
	start := time.Now()
	segments, err := p.STT.Transcribe(ctx, path)
	if err != nil {
		log.WithField("channel", channel).WithError(err).Warn("transcription failed, continuing with empty channel")
		return nil
	}
	log.WithFields(logrus.Fields{
		"channel":     channel,
		"segments":    len(segments),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("channel transcribed")
	return segments
}

// save writes the transcript and summary to date-named files in the
// output directory. Runs on the same day overwrite each other's output;
// the artifacts are "latest per day" on purpose.
func (p *Pipeline) save(r *Result) error {
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	date := time.Now().Format("2006-01-02")
	r.TranscriptPath = filepath.Join(p.OutputDir, fmt.Sprintf("transcription_%s.txt", date))
	r.SummaryPath = filepath.Join(p.OutputDir, fmt.Sprintf("summary_%s.txt", date))

	if err := os.WriteFile(r.TranscriptPath, []byte(r.Transcript), 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	if err := os.WriteFile(r.SummaryPath, []byte(r.Summary), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
