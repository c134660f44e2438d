package analysis

import "strings"

// DefaultSummaryLength is the character cap for the review summary card.
const DefaultSummaryLength = 200

// summarySampleSize is how many leading reviews feed the summary.
const summarySampleSize = 3

// Summarize builds a short extractive summary: the first three texts are
// joined with spaces, the result is split on literal periods, and the
// first two segments are rejoined with ". ". Anything longer than maxLen
// characters is cut there and suffixed with "...".
//
// The split is on raw '.' characters, not sentence boundaries, so a
// segment that already ends mid-sentence (or the doubled period the
// rejoin can produce) is part of the contract, matching the upstream
// pipeline this dashboard was built against.
func Summarize(texts []string, maxLen int) string {
	sample := texts
	if len(sample) > summarySampleSize {
		sample = sample[:summarySampleSize]
	}
	combined := strings.Join(sample, " ")

	segments := strings.Split(combined, ".")
	if len(segments) > 2 {
		segments = segments[:2]
	}
	summary := strings.Join(segments, ". ")

	if runes := []rune(summary); len(runes) > maxLen {
		summary = string(runes[:maxLen]) + "..."
	}
	return strings.TrimSpace(summary)
}
