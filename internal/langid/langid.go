// Package langid guesses the language of a text from a fixed table of
// high-frequency function words. It is a coarse heuristic over the four
// languages the analysis pipeline supports, not a statistical model.
package langid

import "strings"

// marker tables in fixed priority order; the first language listed wins
// ties, so detection is deterministic.
var markers = []struct {
	code  string
	words []string
}{
	{"de", []string{"der", "die", "das", "und", "ist", "nicht", "sie", "ich", "ein", "eine"}},
	{"es", []string{"el", "la", "los", "las", "que", "de", "en", "es", "por", "con"}},
	{"fr", []string{"le", "la", "les", "des", "est", "sont", "nous", "vous", "pas", "qui"}},
	{"en", []string{"the", "and", "is", "are", "was", "were", "have", "has", "been", "will"}},
}

// Supported reports whether code is one of the languages the analysis
// tables cover.
func Supported(code string) bool {
	for _, m := range markers {
		if m.code == code {
			return true
		}
	}
	return false
}

// Detect returns the 2-letter code of the language whose marker words are
// most often present in the text. Each marker is matched as a
// space-delimited substring of the lowercased text, which undercounts
// words at text boundaries and directly before punctuation; good enough
// for whole books.
func Detect(text string) string {
	lower := strings.ToLower(text)

	best := markers[0].code
	bestScore := -1
	for _, m := range markers {
		score := 0
		for _, w := range m.words {
			if strings.Contains(lower, " "+w+" ") {
				score++
			}
		}
		if score > bestScore {
			best = m.code
			bestScore = score
		}
	}
	return best
}
