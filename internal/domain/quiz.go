package domain

import "context"

// AllCategories selects questions from every category when used as a quiz category.
const AllCategories = 0

// Question event types broadcast to live subscribers
const (
	EventQuestionCreated = "question_created"
	EventQuestionDeleted = "question_deleted"
)

// QuizHistory remembers which questions a quiz has already served.
type QuizHistory interface {
	// Asked returns the question IDs already served for a quiz
	Asked(ctx context.Context, quizID string) ([]int, error)

	// Record marks a question as served for a quiz
	Record(ctx context.Context, quizID string, questionID int) error

	// Forget drops the history of a finished quiz
	Forget(ctx context.Context, quizID string) error
}

// QuestionEvent describes a change to the question set.
type QuestionEvent struct {
	Type     string   `json:"type"`
	Question Question `json:"question"`
}

// EventPublisher delivers question events to interested listeners.
type EventPublisher interface {
	Publish(event QuestionEvent)
}
