package report

import (
	"context"
	"fmt"
	"strings"

	"meetscribe/internal/summarize"
)

// NoCommitments is rendered when no transcript line matched the
// commitment heuristics.
const NoCommitments = "No commitments found."

// Compose builds the structured report for a rendered transcript: the
// narrative section from the summarization engine, then the numbered
// commitments section. A summarizer failure is fatal; Compose never
// substitutes a fabricated narrative.
func Compose(ctx context.Context, engine summarize.Engine, transcriptText string) (string, error) {
	cleaned := strings.TrimSpace(StripPrefixes(transcriptText))

	narrative, err := engine.Summarize(ctx, cleaned)
	if err != nil {
		return "", fmt.Errorf("report: narrative summary: %w", err)
	}

	commitments := FindCommitments(cleaned)

	section := NoCommitments
	if len(commitments) > 0 {
		lines := make([]string, 0, len(commitments))
		for i, c := range commitments {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, c))
		}
		section = strings.Join(lines, "\n")
	}

	return fmt.Sprintf("### Summary ###\n%s\n\n### Commitments ###\n%s", narrative, section), nil
}
