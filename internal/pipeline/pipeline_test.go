package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"meetscribe/internal/diarize"
	"meetscribe/internal/logger"
	"meetscribe/internal/stt"
)

type fakeSTT struct {
	segments map[string][]stt.Segment
	err      error
}

func (f *fakeSTT) Transcribe(_ context.Context, path string) ([]stt.Segment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.segments[path], nil
}

func (f *fakeSTT) Close() error { return nil }

type fakeDiarizer struct {
	turns []diarize.Turn
	err   error
}

func (f *fakeDiarizer) Diarize(_ context.Context, _ string) ([]diarize.Turn, error) {
	return f.turns, f.err
}

func (f *fakeDiarizer) Close() error { return nil }

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return f.summary, f.err
}

func (f *fakeSummarizer) Close() error { return nil }

func newTestPipeline(t *testing.T, s *fakeSTT, d *fakeDiarizer, sum *fakeSummarizer) *Pipeline {
	t.Helper()
	return &Pipeline{
		STT:        s,
		Diarizer:   d,
		Summarizer: sum,
		OutputDir:  t.TempDir(),
		Log:        logger.New("error"),
	}
}

func TestProcessEndToEnd(t *testing.T) {
	s := &fakeSTT{segments: map[string][]stt.Segment{
		"mic.wav": {{Start: 0, End: 5, Text: "Hello"}},
		"sys.wav": {{Start: 2, End: 6, Text: "Hi there"}},
	}}
	d := &fakeDiarizer{turns: []diarize.Turn{{Start: 1, End: 7, Speaker: "spk_x"}}}
	sum := &fakeSummarizer{summary: "A short greeting was exchanged."}

	p := newTestPipeline(t, s, d, sum)
	res, err := p.Process(context.Background(), "mic.wav", "sys.wav")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	wantTranscript := "[0.00s - 5.00s] Speaker You: Hello\n[1.00s - 7.00s] Speaker Speaker 1: Hi there"
	if res.Transcript != wantTranscript {
		t.Errorf("Transcript =\n%q\nwant\n%q", res.Transcript, wantTranscript)
	}

	wantSummary := "### Summary ###\nA short greeting was exchanged.\n\n### Commitments ###\nNo commitments found."
	if res.Summary != wantSummary {
		t.Errorf("Summary =\n%q\nwant\n%q", res.Summary, wantSummary)
	}

	// Artifacts are date-named and overwritten per day on purpose.
	date := time.Now().Format("2006-01-02")
	if got := res.TranscriptPath; !strings.HasSuffix(got, fmt.Sprintf("transcription_%s.txt", date)) {
		t.Errorf("TranscriptPath = %q", got)
	}
	if got := res.SummaryPath; !strings.HasSuffix(got, fmt.Sprintf("summary_%s.txt", date)) {
		t.Errorf("SummaryPath = %q", got)
	}

	data, err := os.ReadFile(res.TranscriptPath)
	if err != nil {
		t.Fatalf("reading transcript artifact: %v", err)
	}
	if string(data) != wantTranscript {
		t.Errorf("transcript artifact = %q", string(data))
	}

	data, err = os.ReadFile(res.SummaryPath)
	if err != nil {
		t.Fatalf("reading summary artifact: %v", err)
	}
	if string(data) != wantSummary {
		t.Errorf("summary artifact = %q", string(data))
	}
}

func TestProcessContainsTranscriptionFailure(t *testing.T) {
	s := &fakeSTT{err: errors.New("stt server down")}
	d := &fakeDiarizer{turns: []diarize.Turn{{Start: 0, End: 5, Speaker: "spk_a"}}}
	sum := &fakeSummarizer{summary: "Nothing was transcribed."}

	p := newTestPipeline(t, s, d, sum)
	res, err := p.Process(context.Background(), "mic.wav", "sys.wav")
	if err != nil {
		t.Fatalf("Process() must contain transcription failures, got %v", err)
	}
	if len(res.Entries) != 0 {
		t.Errorf("Entries = %+v, want none", res.Entries)
	}
	if !strings.Contains(res.Summary, "No commitments found.") {
		t.Errorf("Summary should still render the sentinel:\n%s", res.Summary)
	}
}

func TestProcessContainsDiarizationFailure(t *testing.T) {
	s := &fakeSTT{segments: map[string][]stt.Segment{
		"mic.wav": {{Start: 0, End: 2, Text: "Just me talking"}},
		"sys.wav": {{Start: 1, End: 3, Text: "unattributed system speech"}},
	}}
	d := &fakeDiarizer{err: errors.New("diarizer down")}
	sum := &fakeSummarizer{summary: "One-sided conversation."}

	p := newTestPipeline(t, s, d, sum)
	res, err := p.Process(context.Background(), "mic.wav", "sys.wav")
	if err != nil {
		t.Fatalf("Process() must contain diarization failures, got %v", err)
	}
	// Without speaker turns, system speech has nothing to attach to.
	if len(res.Entries) != 1 || res.Entries[0].Speaker != "You" {
		t.Errorf("Entries = %+v, want only the mic entry", res.Entries)
	}
}

func TestProcessSummarizerFailureFatal(t *testing.T) {
	s := &fakeSTT{segments: map[string][]stt.Segment{
		"mic.wav": {{Start: 0, End: 2, Text: "hi"}},
	}}
	d := &fakeDiarizer{}
	sum := &fakeSummarizer{err: errors.New("summarizer unavailable")}

	p := newTestPipeline(t, s, d, sum)
	_, err := p.Process(context.Background(), "mic.wav", "sys.wav")
	if err == nil {
		t.Fatal("Process() must propagate summarizer failures")
	}
	if !strings.Contains(err.Error(), "summarizer unavailable") {
		t.Errorf("error should wrap the cause, got %v", err)
	}
}
