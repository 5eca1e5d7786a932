// Package transcript reconciles the two transcribed audio channels and the
// diarization turns into a single chronological, speaker-attributed
// transcript. Microphone speech is labeled "You"; system-audio speech is
// attributed to "Speaker 1", "Speaker 2", ... in order of first appearance.
package transcript

import (
	"fmt"
	"sort"
	"strings"

	"meetscribe/internal/diarize"
	"meetscribe/internal/stt"
)

// Entry is one line of the reconciled transcript.
type Entry struct {
	Start   float64
	End     float64
	Speaker string
	Text    string
}

// Aliases maps opaque diarization labels to stable display names for the
// duration of one merge pass. The k-th distinct label resolves to
// "Speaker k". Not persisted: repeated runs may alias the same physical
// speaker differently.
type Aliases struct {
	names map[string]string
}

// NewAliases returns an empty alias table.
func NewAliases() *Aliases {
	return &Aliases{names: make(map[string]string)}
}

// Resolve returns the display name for a diarization label, assigning the
// next "Speaker k" name on first sight.
func (a *Aliases) Resolve(label string) string {
	if name, ok := a.names[label]; ok {
		return name
	}
	name := fmt.Sprintf("Speaker %d", len(a.names)+1)
	a.names[label] = name
	return name
}

// Merge combines the microphone and system-audio transcriptions with the
// diarization turns.
//
// Every microphone segment becomes an entry labeled "You", even when its
// text is empty. Each diarization turn becomes an entry carrying the text
// of all system segments that overlap it; turns with no attributable
// speech are dropped. Both channels may capture the same utterance; no
// deduplication is attempted since the entries represent different
// speakers. The result is stable-sorted by start time.
func Merge(mic, system []stt.Segment, turns []diarize.Turn) []Entry {
	entries := make([]Entry, 0, len(mic)+len(turns))

	for _, seg := range mic {
		entries = append(entries, Entry{
			Start:   seg.Start,
			End:     seg.End,
			Speaker: "You",
			Text:    strings.TrimSpace(seg.Text),
		})
	}

	aliases := NewAliases()
	for _, turn := range turns {
		// Resolve before the emptiness check so alias numbering follows
		// turn order, not the order of turns that produced text.
		speaker := aliases.Resolve(turn.Speaker)

		text := overlapText(turn, system)
		if text == "" {
			continue
		}
		entries = append(entries, Entry{
			Start:   turn.Start,
			End:     turn.End,
			Speaker: speaker,
			Text:    text,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})

	return entries
}

// overlapText concatenates the text of every system segment that strictly
// overlaps the turn's interval, in input order. Meeting-scale inputs stay
// in the low thousands of segments, so the linear scan per turn is fine.
func overlapText(turn diarize.Turn, system []stt.Segment) string {
	var parts []string
	for _, seg := range system {
		if seg.Start < turn.End && seg.End > turn.Start {
			if text := strings.TrimSpace(seg.Text); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}
