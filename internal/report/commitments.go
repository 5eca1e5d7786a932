package report

import (
	"fmt"
	"regexp"
	"strings"
)

// commitmentKeywords flag a line as expressing an obligation or deadline.
// Matching is case-insensitive substring search; this is a deliberate
// heuristic, not semantic extraction.
var commitmentKeywords = []string{
	"will", "shall", "commit", "promise", "agree", "deadline",
	"task", "must", "need to", "complete by", "due date",
}

// datePattern matches common date spellings: numeric day/month/year with
// '.', '/' or '-' separators, ISO dates, and month names (full or
// abbreviated, including "Sept") followed by a day and optional year.
var datePattern = regexp.MustCompile(`\b(?:\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}-\d{2}-\d{2}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec|January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2}(?:, \d{4})?)\b`)

// Commitment is a transcript line flagged as a commitment, with any dates
// found on it.
type Commitment struct {
	Line  string
	Dates []string
}

// String renders the commitment as its trimmed line, with found dates
// appended as " (Dates: d1, d2)".
func (c Commitment) String() string {
	if len(c.Dates) == 0 {
		return c.Line
	}
	return fmt.Sprintf("%s (Dates: %s)", c.Line, strings.Join(c.Dates, ", "))
}

// FindCommitments scans prefix-free transcript text line by line and
// returns the lines containing commitment language, in input order.
func FindCommitments(text string) []Commitment {
	var commitments []Commitment
	for _, line := range strings.Split(text, "\n") {
		if !containsKeyword(line) {
			continue
		}
		commitments = append(commitments, Commitment{
			Line:  strings.TrimSpace(line),
			Dates: datePattern.FindAllString(line, -1),
		})
	}
	return commitments
}

func containsKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range commitmentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
