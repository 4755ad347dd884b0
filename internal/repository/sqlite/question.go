package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/repository"
)

// Ensure QuestionRepository implements the interface.
var _ domain.QuestionRepository = (*QuestionRepository)(nil)

const questionColumns = `id, question, answer, difficulty, category`

// QuestionRepository implements domain.QuestionRepository on SQLite.
type QuestionRepository struct {
	db *sql.DB
}

// List retrieves all questions
func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	return r.query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

// ListByCategory retrieves the questions of one category
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	return r.query(ctx, `SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, categoryID)
}

// Search retrieves questions whose text contains term, ignoring case
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]domain.Question, error) {
	return r.query(ctx,
		`SELECT `+questionColumns+` FROM questions
		WHERE `+lowerFunc+`(question) LIKE ? ESCAPE '`+repository.LikeEscape+`'
		ORDER BY id`,
		repository.ContainsPattern(term),
	)
}

// GetByID retrieves a question by its ID
func (r *QuestionRepository) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	var q domain.Question
	err := r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &q, nil
}

// Create inserts a question and sets its ID
func (r *QuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (question, answer, difficulty, category) VALUES (?, ?, ?, ?)`,
		question.Question, question.Answer, question.Difficulty, question.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read question id: %w", err)
	}
	question.ID = int(id)
	return nil
}

// Delete removes a question
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if n == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (r *QuestionRepository) query(ctx context.Context, query string, args ...any) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Difficulty, &q.Category); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return questions, nil
}
