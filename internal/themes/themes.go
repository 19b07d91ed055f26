// Package themes scores a text against fixed per-language keyword
// taxonomies and returns the strongest theme labels. Scores are
// normalized to occurrences per 10,000 words so books of different
// lengths are comparable.
package themes

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shelfcat/shelfcat/internal/langid"
)

// DefaultTopN is the number of theme slots in a catalog record.
const DefaultTopN = 5

// minScore is the noise floor: themes scoring below one occurrence per
// 10,000 words are dropped even when a top-N slot is free.
const minScore = 1.0

// Detect returns the display labels of the strongest themes, ranked by
// normalized keyword frequency, at most topN of them. Ties keep taxonomy
// declaration order. Empty text yields an empty list. If lang is empty it
// is detected from the text; unsupported languages fall back to the
// English taxonomy.
func Detect(text, lang string, topN int) []string {
	if text == "" {
		return nil
	}

	wordCount := len(strings.Fields(text))
	if wordCount == 0 {
		return nil
	}

	if lang == "" {
		lang = langid.Detect(text)
	}
	table, ok := keywords[lang]
	if !ok {
		table = keywords["en"]
	}

	tokens := tokenize(strings.ToLower(text))

	type scored struct {
		id    string
		score float64
	}
	var ranked []scored
	for _, id := range themeOrder {
		raw := 0
		for _, kw := range table[id] {
			raw += countPhrase(tokens, tokenize(kw))
		}
		if raw == 0 {
			continue
		}
		ranked = append(ranked, scored{
			id:    id,
			score: float64(raw) / float64(wordCount) * 10000,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var result []string
	for _, s := range ranked {
		if len(result) >= topN {
			break
		}
		if s.score >= minScore {
			result = append(result, labels[s.id])
		}
	}
	return result
}

// tokenize splits a lowercased text into word tokens. Letters, digits,
// and underscores are word characters; everything else separates tokens.
// This mirrors whole-word regex matching while staying correct for
// accented keywords.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// countPhrase counts non-overlapping occurrences of a token phrase in a
// token stream.
func countPhrase(tokens, phrase []string) int {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return 0
	}

	count := 0
	for i := 0; i+len(phrase) <= len(tokens); {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			count++
			i += len(phrase)
		} else {
			i++
		}
	}
	return count
}
