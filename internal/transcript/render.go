package transcript

import (
	"fmt"
	"strings"
)

// Render formats the merged entries as the canonical transcript text,
// one line per entry:
//
//	[0.00s - 5.00s] Speaker You: Hello
func Render(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("[%.2fs - %.2fs] Speaker %s: %s", e.Start, e.End, e.Speaker, e.Text))
	}
	return strings.Join(lines, "\n")
}
