package readability

import "strings"

// Vowels across the supported languages, including accented forms. y is
// treated as a vowel throughout.
const vowels = "aeiouyäöüáéíóúàèìòùâêîôûæœ"

// Syllables approximates the syllable count of a word by counting
// vowel-cluster starts: a vowel immediately following a non-vowel begins
// a new cluster. The result is floored at 1.
func Syllables(word string) int {
	count := 0
	prevVowel := false
	for _, r := range strings.ToLower(word) {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count < 1 {
		count = 1
	}
	return count
}
