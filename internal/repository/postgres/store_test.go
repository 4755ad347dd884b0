package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// setupTestStore connects to the database named by TRIVIA_TEST_POSTGRES_URL
// and recreates the schema. The test is skipped when the variable is unset.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TRIVIA_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TRIVIA_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS questions, categories`)
	require.NoError(t, err)

	store := NewStore(pool)
	require.NoError(t, store.Migrate(ctx))

	result, err := store.Seed(ctx,
		[]domain.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}},
		[]domain.Question{
			{Question: "What is H2O?", Answer: "Water", Difficulty: 1, Category: 1},
			{Question: "Who painted the Mona Lisa?", Answer: "Leonardo", Difficulty: 2, Category: 2},
			{Question: "What is 100% cotton made of?", Answer: "Cotton", Difficulty: 1, Category: 1},
		},
	)
	require.NoError(t, err)
	require.Equal(t, domain.SeedResult{Categories: 2, Questions: 3}, result)
	return store
}

func TestStore_SeedIdempotent(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	result, err := store.Seed(ctx,
		[]domain.Category{{ID: 1, Type: "Renamed"}, {ID: 3, Type: "History"}},
		[]domain.Question{{Question: "extra"}},
	)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedResult{Categories: 1}, result)

	questions, err := store.Questions().List(ctx)
	require.NoError(t, err)
	assert.Len(t, questions, 3)

	c, err := store.Categories().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Science", c.Type)
}

func TestQuestionRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	repo := store.Questions()

	byCategory, err := repo.ListByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	found, err := repo.Search(ctx, "MONA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Leonardo", found[0].Answer)

	found, err = repo.Search(ctx, "100%")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	q := &domain.Question{Question: "New?", Answer: "Yes", Difficulty: 5, Category: 2}
	require.NoError(t, repo.Create(ctx, q))
	assert.NotZero(t, q.ID)

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, *q, *got)

	require.NoError(t, repo.Delete(ctx, q.ID))
	assert.ErrorIs(t, repo.Delete(ctx, q.ID), domain.ErrQuestionNotFound)
	_, err = repo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestCategoryRepository_Postgres(t *testing.T) {
	ctx := context.Background()
	repo := setupTestStore(t).Categories()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := repo.GetByIDs(ctx, []int{2, 99})
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{{ID: 2, Type: "Art"}}, some)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
