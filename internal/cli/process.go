package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"meetscribe/internal/diarize"
	"meetscribe/internal/pipeline"
	"meetscribe/internal/stt"
	"meetscribe/internal/summarize"
)

// NewProcessCmd builds the process command: transcribe, merge, and
// summarize a recorded session.
func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var micPath, systemPath string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Transcribe, merge, and summarize a recorded session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), deps, micPath, systemPath)
		},
	}

	cmd.Flags().StringVar(&micPath, "mic", "", "microphone channel WAV file")
	cmd.Flags().StringVar(&systemPath, "system", "", "system channel WAV file")
	_ = cmd.MarkFlagRequired("mic")
	_ = cmd.MarkFlagRequired("system")

	return cmd
}

func runProcess(ctx context.Context, deps *Dependencies, micPath, systemPath string) error {
	sttEngine, err := stt.New(&deps.Config.STT)
	if err != nil {
		return err
	}
	defer sttEngine.Close()

	diarizer, err := diarize.New(&deps.Config.Diarize)
	if err != nil {
		return err
	}
	defer diarizer.Close()

	summarizer, err := summarize.New(&deps.Config.Summarize)
	if err != nil {
		return err
	}
	defer summarizer.Close()

	p := &pipeline.Pipeline{
		STT:        sttEngine,
		Diarizer:   diarizer,
		Summarizer: summarizer,
		OutputDir:  deps.Config.OutputDir,
		Log:        deps.Log,
	}

	res, err := p.Process(ctx, micPath, systemPath)
	if err != nil {
		return err
	}

	fmt.Printf("Transcript: %s\n", res.TranscriptPath)
	fmt.Printf("Summary:    %s\n", res.SummaryPath)
	return nil
}
