// Package verify checks extracted EPUB metadata against the catalog's
// expected title and author. Matching is deliberately approximate: token
// overlap for titles, cross-substring name parts for authors, tolerant of
// subtitles, initials, and translation drift.
package verify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shelfcat/shelfcat/internal/epub"
)

// Result reports whether the extracted metadata matches the expected
// record, along with the raw extracted strings for the catalog.
type Result struct {
	TitleMatch   bool
	AuthorMatch  bool
	ActualTitle  string
	ActualAuthor string
}

// Match compares expected title/author against extracted metadata. Both
// flags are false when either extracted field is absent.
func Match(expectedTitle, expectedAuthor string, md epub.Metadata) Result {
	result := Result{
		ActualTitle:  md.Title,
		ActualAuthor: md.Author,
	}

	if md.Title == "" || md.Author == "" {
		return result
	}

	expTitle := normalize(expectedTitle)
	expAuthor := normalize(expectedAuthor)
	actTitle := normalize(md.Title)
	actAuthor := normalize(md.Author)

	if expTitle != "" && actTitle != "" {
		result.TitleMatch = titleMatches(expTitle, actTitle)
	}
	if expAuthor != "" && actAuthor != "" {
		result.AuthorMatch = authorMatches(expAuthor, actAuthor)
	}

	return result
}

// titleMatches succeeds when the normalized word sets share at least
// min(2, distinct expected words) words. Titles with a single distinct
// word need one common word; anything richer needs two.
func titleMatches(expected, actual string) bool {
	expectedSet := make(map[string]bool)
	for _, w := range strings.Fields(expected) {
		expectedSet[w] = true
	}
	actualSet := make(map[string]bool)
	for _, w := range strings.Fields(actual) {
		actualSet[w] = true
	}

	common := 0
	for w := range expectedSet {
		if actualSet[w] {
			common++
		}
	}

	needed := 2
	if len(expectedSet) < needed {
		needed = len(expectedSet)
	}
	return common >= needed
}

// authorMatches succeeds when any expected name part longer than 2
// characters contains, or is contained in, any actual name part longer
// than 2 characters. Handles middle names, initials, and transliteration.
func authorMatches(expected, actual string) bool {
	for _, ep := range strings.Fields(expected) {
		if utf8.RuneCountInString(ep) <= 2 {
			continue
		}
		for _, ap := range strings.Fields(actual) {
			if utf8.RuneCountInString(ap) <= 2 {
				continue
			}
			if strings.Contains(ap, ep) || strings.Contains(ep, ap) {
				return true
			}
		}
	}
	return false
}

// normalize lowercases, strips everything that is not a letter, digit,
// underscore, or whitespace, and collapses whitespace runs.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
