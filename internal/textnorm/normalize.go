// Package textnorm canonicalizes raw report text before classification.
// Normalization is pure and idempotent: lowercase, fold diacritics, keep
// only letters, digits and single spaces.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks decomposes and strips combining marks so accented trigger
// phrases ("choléra") match their plain forms.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical form of text: whitespace runs collapsed
// to single spaces, leading/trailing whitespace stripped, punctuation
// removed, lowercased. Empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded, _, err := transform.String(foldMarks, text)
	if err != nil {
		// Fold failure only loses diacritic matching; classify on the raw text.
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))

	lastSpace := true // suppresses leading spaces
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	return strings.TrimRight(b.String(), " ")
}
