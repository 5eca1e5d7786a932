// Package report derives the structured meeting report from the rendered
// transcript: a narrative summary from the summarization engine plus a
// locally extracted list of commitments.
package report

import "regexp"

var (
	speakerPrefixRe   = regexp.MustCompile(`\[\d+\.\d+s - \d+\.\d+s\] Speaker .*?:`)
	timestampPrefixRe = regexp.MustCompile(`\[\d+\.\d+s - \d+\.\d+s\]`)
)

// StripPrefixes removes "[0.00s - 5.00s] Speaker X:" and bare
// "[0.00s - 5.00s]" markers from transcript text, leaving the spoken
// content only. Line breaks are preserved so the result can still be
// processed line by line. Applying it twice is the same as applying it
// once.
func StripPrefixes(text string) string {
	text = speakerPrefixRe.ReplaceAllString(text, "")
	text = timestampPrefixRe.ReplaceAllString(text, "")
	return text
}
