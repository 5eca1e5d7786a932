// Package cli wires the cobra command tree around the recording session
// and the processing pipeline.
package cli

import (
	"github.com/spf13/cobra"

	"meetscribe/internal/config"
	"meetscribe/internal/logger"
)

// Dependencies holds everything the commands need.
type Dependencies struct {
	Config *config.Config
	Log    *logger.Logger
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meetscribe",
		Short: "Record meetings, merge dual-channel transcripts, and summarize",
		Long: "meetscribe records microphone and system audio during a meeting,\n" +
			"transcribes both channels, attributes system speech to speakers via\n" +
			"diarization, merges everything into one chronological transcript, and\n" +
			"produces a structured summary with extracted commitments.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewDevicesCmd(deps))

	return rootCmd
}
