// Package readability estimates the reading difficulty of a text as a
// Flesch-Kincaid grade level and maps it to a CEFR proficiency band.
package readability

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shelfcat/shelfcat/internal/langid"
)

const (
	// minTextLen is the minimum text length worth scoring at all.
	minTextLen = 100
	// minWords is the minimum word count for a meaningful grade.
	minWords = 10
)

// Result holds a difficulty estimate. When Scored is false the grade and
// band are not meaningful and Reason explains why scoring was skipped.
type Result struct {
	Grade    float64
	Band     string
	Language string
	Reason   string
	Scored   bool
}

// GradeStrategy computes a grade level for a text in a given language.
// Strategies are selected once at construction, not per call, so a
// preferred external engine can be swapped in without touching call sites.
type GradeStrategy interface {
	Grade(text, lang string) (float64, bool)
}

// Scorer scores texts with a fixed grade strategy.
type Scorer struct {
	strategy GradeStrategy
}

// NewScorer probes available grade strategies and returns a scorer using
// the best one. The formula-based strategy is always available.
func NewScorer() *Scorer {
	return &Scorer{strategy: formulaStrategy{}}
}

// Score computes the grade level and CEFR band for a text. If lang is
// empty the language is detected from the text. Short texts fail soft
// with an explanatory reason.
func (s *Scorer) Score(text, lang string) Result {
	if utf8.RuneCountInString(text) < minTextLen {
		return Result{Reason: "Text too short"}
	}

	if lang == "" {
		lang = langid.Detect(text)
	}

	grade, ok := s.strategy.Grade(text, lang)
	if !ok {
		return Result{Language: lang, Reason: "Not enough words"}
	}

	return Result{
		Grade:    grade,
		Band:     GradeToBand(grade),
		Language: lang,
		Scored:   true,
	}
}

// GradeToBand maps a grade level to a CEFR band. Boundaries are
// inclusive-upper: a grade of exactly 4 is still A1.
func GradeToBand(grade float64) string {
	switch {
	case grade <= 4:
		return "A1"
	case grade <= 6:
		return "A2"
	case grade <= 8:
		return "B1"
	case grade <= 10:
		return "B2"
	case grade <= 13:
		return "C1"
	default:
		return "C2"
	}
}

// formulaStrategy implements the manual Flesch-Kincaid computation:
//
//	grade = 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59
//
// clamped at zero and rounded to one decimal.
type formulaStrategy struct{}

func (formulaStrategy) Grade(text, lang string) (float64, bool) {
	cleaned := cleanForScoring(text)

	sentences := countSentences(cleaned)
	words := strings.Fields(cleaned)
	if len(words) < minWords {
		return 0, false
	}

	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}

	avgSentenceLen := float64(len(words)) / float64(sentences)
	avgSyllables := float64(syllables) / float64(len(words))
	grade := 0.39*avgSentenceLen + 11.8*avgSyllables - 15.59

	if grade < 0 {
		grade = 0
	}
	return math.Round(grade*10) / 10, true
}

// cleanForScoring strips everything except word characters, whitespace,
// and sentence terminators.
func cleanForScoring(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '.' || r == '!' || r == '?':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// countSentences counts runs of sentence terminators, with a floor of 1
// to keep the formula defined for fragments.
func countSentences(text string) int {
	count := 0
	inRun := false
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if !inRun {
				count++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}
