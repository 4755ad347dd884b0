package domain

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Question is a single trivia item.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// Category groups questions by topic.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// QuestionRepository defines the interface for question storage.
// Every listing is ordered by question id.
type QuestionRepository interface {
	// List retrieves all questions
	List(ctx context.Context) ([]Question, error)

	// ListByCategory retrieves the questions of one category
	ListByCategory(ctx context.Context, categoryID int) ([]Question, error)

	// Search retrieves questions whose text contains term, ignoring case
	Search(ctx context.Context, term string) ([]Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Create inserts a question and sets its ID
	Create(ctx context.Context, question *Question) error

	// Delete removes a question, returning ErrQuestionNotFound if it does not exist
	Delete(ctx context.Context, id int) error
}

// CategoryRepository defines the interface for category storage.
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category, returning ErrCategoryNotFound if it does not exist
	GetByID(ctx context.Context, id int) (*Category, error)

	// GetByIDs retrieves the categories matching ids in a single query
	GetByIDs(ctx context.Context, ids []int) ([]Category, error)
}

// SeedResult counts the rows a seed actually inserted.
type SeedResult struct {
	Categories int
	Questions  int
}

// CategoryMap converts categories to the id->type mapping used in API payloads.
func CategoryMap(categories []Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
