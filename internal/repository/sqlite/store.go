// Package sqlite provides an embedded SQLite storage backend for local
// development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	moderncsqlite "modernc.org/sqlite"

	"github.com/zizouhuweidi/trivia/internal/domain"
)

// lowerFunc lower-cases text with full Unicode case mapping. The built-in
// lower() only maps ASCII letters.
const lowerFunc = "unicode_lower"

func init() {
	err := moderncsqlite.RegisterDeterministicScalarFunction(lowerFunc, 1,
		func(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return strings.ToLower(v), nil
			case []byte:
				return strings.ToLower(string(v)), nil
			default:
				return v, nil
			}
		},
	)
	if err != nil {
		panic(fmt.Sprintf("registering %s: %v", lowerFunc, err))
	}
}

// Store is a SQLite-backed store exposing the question and category repositories.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the SQLite database at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Questions returns the question repository backed by this store.
func (s *Store) Questions() domain.QuestionRepository {
	return &QuestionRepository{db: s.db}
}

// Categories returns the category repository backed by this store.
func (s *Store) Categories() domain.CategoryRepository {
	return &CategoryRepository{db: s.db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL DEFAULT '',
		answer TEXT NOT NULL DEFAULT '',
		difficulty INTEGER NOT NULL DEFAULT 0,
		category INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category)`,
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Seed inserts categories (keeping existing ids) and, when the question
// table is empty, the given questions. It runs in a single transaction.
func (s *Store) Seed(ctx context.Context, categories []domain.Category, questions []domain.Question) (domain.SeedResult, error) {
	var result domain.SeedResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range categories {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, type) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Type,
		)
		if err != nil {
			return result, fmt.Errorf("failed to seed category %d: %w", c.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return result, fmt.Errorf("failed to seed category %d: %w", c.ID, err)
		}
		result.Categories += int(n)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return result, fmt.Errorf("failed to count questions: %w", err)
	}

	if count == 0 {
		for _, q := range questions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO questions (question, answer, difficulty, category) VALUES (?, ?, ?, ?)`,
				q.Question, q.Answer, q.Difficulty, q.Category,
			); err != nil {
				return result, fmt.Errorf("failed to seed question: %w", err)
			}
		}
		result.Questions = len(questions)
	}

	if err := tx.Commit(); err != nil {
		return domain.SeedResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}
