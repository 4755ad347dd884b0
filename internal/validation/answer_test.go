package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"The Liver", "liver"},
		{"  Lake   Victoria!  ", "lake victoria"},
		{"An Apple", "apple"},
		{"Pokémon", "pokemon"},
		{"M.C. Escher", "mc escher"},
		{"Theatre", "theatre"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAnswer(tt.in), tt.in)
	}
}

func TestIsCorrectAnswer(t *testing.T) {
	tests := []struct {
		answer, guess string
		want          bool
	}{
		{"The Liver", "liver", true},
		{"Muhammad Ali", "muhammad ali", true},
		{"Escher", "M.C. Escher", true},
		{"George Washington Carver", "George Washington Carvr", true},
		{"Alexander Fleming", "Alexandre Flemming", true},
		{"Uruguay", "Brazil", false},
		{"Agra", "", false},
		{"One", "Two", false},
		{"Alexander Fleming", "Fleming", true},
		{"Lake Victoria", "the lake victoria in africa", true},
		{"Alexander Fleming", "e", false},
		{"Alexander Fleming", "a", false},
		{"Alexander Fleming", "n", false},
		{"Alexander Fleming", "ander", false},
		{"Alexander Fleming", "Al", false},
		{"Muhammad Ali", "Ali", true},
		{"Escher", "he", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCorrectAnswer(tt.answer, tt.guess), "%q vs %q", tt.answer, tt.guess)
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein([]rune("abc"), []rune("abc")))
	assert.Equal(t, 3, levenshtein([]rune(""), []rune("abc")))
	assert.Equal(t, 3, levenshtein([]rune("kitten"), []rune("sitting")))
	assert.Equal(t, 1, levenshtein([]rune("café"), []rune("cafe")))
}
