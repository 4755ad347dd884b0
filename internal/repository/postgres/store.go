package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// Store groups the PostgreSQL repositories around one connection pool
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a store over an established pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Questions returns the question repository
func (s *Store) Questions() domain.QuestionRepository {
	return NewQuestionRepository(s.pool)
}

// Categories returns the category repository
func (s *Store) Categories() domain.CategoryRepository {
	return NewCategoryRepository(s.pool)
}

// Close closes the connection pool
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id SERIAL PRIMARY KEY,
		question TEXT NOT NULL DEFAULT '',
		answer TEXT NOT NULL DEFAULT '',
		difficulty INTEGER NOT NULL DEFAULT 0,
		category INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_category ON questions (category)`,
}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Seed inserts categories (keeping existing ids) and, when the question
// table is empty, the given questions in a single transaction
func (s *Store) Seed(ctx context.Context, categories []domain.Category, questions []domain.Question) (domain.SeedResult, error) {
	var result domain.SeedResult

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if len(categories) > 0 {
		batch := &pgx.Batch{}
		for _, c := range categories {
			batch.Queue(`INSERT INTO categories (id, type) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, c.ID, c.Type)
		}
		// explicit ids bypass the sequence, so move it past them
		batch.Queue(`SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT MAX(id) FROM categories))`)

		inserted, err := sendSeedBatch(ctx, tx, batch, len(categories))
		if err != nil {
			return result, fmt.Errorf("failed to seed categories: %w", err)
		}
		result.Categories = inserted
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return result, fmt.Errorf("failed to count questions: %w", err)
	}

	if count == 0 && len(questions) > 0 {
		rows := make([][]any, 0, len(questions))
		for _, q := range questions {
			rows = append(rows, []any{q.Question, q.Answer, q.Difficulty, q.Category})
		}
		copied, err := tx.CopyFrom(ctx,
			pgx.Identifier{"questions"},
			[]string{"question", "answer", "difficulty", "category"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return result, fmt.Errorf("failed to seed questions: %w", err)
		}
		result.Questions = int(copied)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.SeedResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

// sendSeedBatch runs batch and sums the rows affected by its first n queries
func sendSeedBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, n int) (int, error) {
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			return 0, err
		}
		if i < n {
			inserted += int(tag.RowsAffected())
		}
	}
	return inserted, br.Close()
}
