package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	assert.Len(t, data.Categories, 6)
	assert.Equal(t, "Science", data.Categories[0].Type)
	assert.Len(t, data.Questions, 19)
	for _, q := range data.Questions {
		assert.Zero(t, q.ID)
	}
}

func TestLoad(t *testing.T) {
	input := `
categories:
  - id: 1
    type: Science
questions:
  - question: Who discovered penicillin?
    answer: Alexander Fleming
    difficulty: 3
    category: 1
`
	data, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, data.Questions, 1)
	assert.Equal(t, "Alexander Fleming", data.Questions[0].Answer)
	assert.Equal(t, 1, data.Questions[0].Category)
}

func TestLoad_Empty(t *testing.T) {
	data, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, data.Categories)
	assert.Empty(t, data.Questions)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "unknown field",
			input: "categories:\n  - id: 1\n    type: Art\n    colour: red\n",
		},
		{
			name:  "duplicate category",
			input: "categories:\n  - id: 1\n    type: Art\n  - id: 1\n    type: Science\n",
		},
		{
			name:  "zero category id",
			input: "categories:\n  - id: 0\n    type: Art\n",
		},
		{
			name: "unknown question category",
			input: `
categories:
  - id: 1
    type: Art
questions:
  - question: q
    answer: a
    difficulty: 1
    category: 2
`,
		},
		{
			name: "difficulty out of range",
			input: `
categories:
  - id: 1
    type: Art
questions:
  - question: q
    answer: a
    difficulty: 9
    category: 1
`,
		},
		{
			name: "blank answer",
			input: `
categories:
  - id: 1
    type: Art
questions:
  - question: q
    answer: "  "
    difficulty: 1
    category: 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.NotValid), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - id: 7\n    type: Music\n"), 0o644))

	data, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "Music", data.Categories[0].Type)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
