// Package validation compares free-text quiz answers against the stored answer.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// similarityThreshold is the largest edit distance, as a fraction of the
// longer answer, still accepted as a match.
const similarityThreshold = 0.2

// minPartialLength is the shortest guess accepted as part of a longer answer.
const minPartialLength = 3

var articles = []string{"the ", "a ", "an "}

// NormalizeAnswer folds case and accents, drops punctuation and a leading
// article, and collapses whitespace.
func NormalizeAnswer(answer string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		answer,
	)
	if err != nil {
		stripped = answer
	}
	// a Caser is stateful, so one is built per call
	folded := cases.Fold().String(stripped)

	var b strings.Builder
	for _, r := range folded {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			b.WriteRune(r)
		}
	}
	normalized := strings.Join(strings.Fields(b.String()), " ")

	for _, article := range articles {
		if strings.HasPrefix(normalized, article) {
			return strings.TrimPrefix(normalized, article)
		}
	}
	return normalized
}

// IsCorrectAnswer reports whether guess is close enough to answer. Matching
// is done on normalized text: equality, one containing the other as whole
// words, or an edit distance below the similarity threshold.
func IsCorrectAnswer(answer, guess string) bool {
	want := NormalizeAnswer(answer)
	got := NormalizeAnswer(guess)

	if got == "" {
		return want == ""
	}
	if want == got {
		return true
	}
	if want == "" {
		return false
	}
	if containsWords(want, got) || containsWords(got, want) {
		return true
	}

	w, g := []rune(want), []rune(got)
	distance := levenshtein(w, g)
	return float64(distance)/float64(max(len(w), len(g))) < similarityThreshold
}

// containsWords reports whether part is a run of whole words inside text
// and is long enough to be a meaningful partial answer.
func containsWords(text, part string) bool {
	if utf8.RuneCountInString(part) < minPartialLength {
		return false
	}
	return strings.Contains(" "+text+" ", " "+part+" ")
}

// levenshtein computes the edit distance between two rune slices using a
// single row of the dynamic programming table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cur := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}

	return row[len(b)]
}
