// Package testutil provides store fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository/sqlite"
)

// Categories is the category fixture seeded by SeededStore.
var Categories = []domain.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
}

// Questions is the question fixture seeded by SeededStore. Two of them
// contain "title"; category 4 has none.
var Questions = []domain.Question{
	{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Difficulty: 4, Category: 1},
	{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Difficulty: 3, Category: 1},
	{Question: "Which painting holds the title of most visited?", Answer: "Mona Lisa", Difficulty: 3, Category: 2},
	{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Difficulty: 2, Category: 3},
	{Question: "Whose autobiography carries the TITLE 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Difficulty: 2, Category: 2},
}

// NewStore creates a migrated, empty SQLite store in a temporary directory.
func NewStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "trivia.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// SeededStore creates a store holding the Categories and Questions fixtures.
// Questions receive ids 1..len(Questions) in order.
func SeededStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store := NewStore(t)
	_, err := store.Seed(context.Background(), Categories, Questions)
	require.NoError(t, err)
	return store
}

// AddQuestions inserts n generated questions into category and returns them.
func AddQuestions(t *testing.T, store *sqlite.Store, n, category int) []domain.Question {
	t.Helper()

	repo := store.Questions()
	added := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		q := domain.Question{
			Question:   "Generated question",
			Answer:     "Generated answer",
			Difficulty: 1,
			Category:   category,
		}
		require.NoError(t, repo.Create(context.Background(), &q))
		added = append(added, q)
	}
	return added
}
