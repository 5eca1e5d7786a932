package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"meetscribe/internal/audio"
)

// NewRecordCmd builds the record command: capture both channels until
// interrupted, then optionally run the processing pipeline.
func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var processAfter bool

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record microphone and system audio until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := audio.NewSession(deps.Config.Audio, deps.Config.OutputDir)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			deps.Log.WithField("session_id", session.ID).Info("recording, press Ctrl+C to stop")
			if err := session.Record(ctx); err != nil {
				return err
			}

			fmt.Printf("Microphone: %s\n", session.MicPath)
			fmt.Printf("System:     %s\n", session.SystemPath)

			if processAfter {
				// The signal context is already canceled; processing gets
				// a fresh one.
				return runProcess(context.Background(), deps, session.MicPath, session.SystemPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&processAfter, "process", false, "run the processing pipeline after recording stops")

	return cmd
}
