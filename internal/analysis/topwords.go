// Package analysis holds the pure functions behind the dashboard: word
// frequencies, the extractive summary, per-product analysis and the
// dataset overview. Everything here operates on in-memory tables and
// performs no I/O.
package analysis

import (
	"sort"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

// stopwords is the closed list of common short words excluded from
// frequency counts.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {},
	"him": {}, "his": {}, "how": {}, "man": {}, "new": {}, "now": {},
	"old": {}, "see": {}, "two": {}, "way": {}, "who": {}, "boy": {},
	"did": {}, "its": {}, "let": {}, "put": {}, "say": {}, "she": {},
	"too": {}, "use": {},
}

// TopWords returns the n most frequent words across the given texts.
// A word is a maximal run of ASCII letters, lowercased, at least three
// letters long; digits and any other characters act as boundaries.
// Stopwords are dropped. Equal counts keep first-seen order.
func TopWords(texts []string, n int) []domain.WordCount {
	if n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string

	word := make([]byte, 0, 16)
	flush := func() {
		if len(word) == 0 {
			return
		}
		w := string(word)
		word = word[:0]
		if len(w) < 3 {
			return
		}
		if _, stop := stopwords[w]; stop {
			return
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	for _, text := range texts {
		for _, r := range text {
			switch {
			case r >= 'a' && r <= 'z':
				word = append(word, byte(r))
			case r >= 'A' && r <= 'Z':
				word = append(word, byte(r+'a'-'A'))
			default:
				flush()
			}
		}
		// texts are treated as space-joined, so a word never spans two
		flush()
	}
	flush()

	out := make([]domain.WordCount, 0, len(order))
	for _, w := range order {
		out = append(out, domain.WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
