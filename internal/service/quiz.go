package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/validation"
)

// QuizRequest asks for the next quiz question
type QuizRequest struct {
	PreviousQuestions []int
	CategoryID        int
	QuizID            string
}

// QuizQuestion is the next quiz question. Question is nil once every
// question of the category has been asked.
type QuizQuestion struct {
	Question *domain.Question
	QuizID   string
}

// AnswerResult reports whether a guess matched a question's answer
type AnswerResult struct {
	Correct bool
	Answer  string
}

// NextQuizQuestion picks a random question from the requested category
// (domain.AllCategories for every category) that is not among the
// previously asked ones.
func (s *QuestionService) NextQuizQuestion(ctx context.Context, req QuizRequest) (*QuizQuestion, error) {
	pool, err := s.quizPool(ctx, req.CategoryID)
	if err != nil {
		return nil, unprocessable(err, "loading quiz questions for category %d", req.CategoryID)
	}
	if len(pool) == 0 {
		return nil, errors.WithType(errors.Errorf("category %d has no questions", req.CategoryID), ErrUnprocessable)
	}

	asked := make(map[int]struct{}, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		asked[id] = struct{}{}
	}

	quizID := req.QuizID
	if s.history != nil {
		if quizID == "" {
			quizID = uuid.NewString()
		} else {
			ids, err := s.history.Asked(ctx, quizID)
			if err != nil {
				// the client-supplied history is still honoured
				s.logger.Warnf("failed to load history of quiz %s: %v", quizID, err)
			}
			for _, id := range ids {
				asked[id] = struct{}{}
			}
		}
	}

	candidates := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := asked[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		s.logger.Debugf("quiz %s exhausted category %d", quizID, req.CategoryID)
		if s.history != nil {
			if err := s.history.Forget(ctx, quizID); err != nil {
				s.logger.Warnf("failed to forget history of quiz %s: %v", quizID, err)
			}
		}
		return &QuizQuestion{QuizID: quizID}, nil
	}

	chosen := candidates[s.pick(len(candidates))]

	if s.history != nil {
		if err := s.history.Record(ctx, quizID, chosen.ID); err != nil {
			s.logger.Warnf("failed to record question %d for quiz %s: %v", chosen.ID, quizID, err)
		}
	}

	return &QuizQuestion{Question: &chosen, QuizID: quizID}, nil
}

// CheckAnswer compares a guess with the stored answer of a question
func (s *QuestionService) CheckAnswer(ctx context.Context, questionID int, guess string) (*AnswerResult, error) {
	if strings.TrimSpace(guess) == "" {
		return nil, errors.BadRequestf("answer is required")
	}

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, s.questionError(err, questionID)
	}

	return &AnswerResult{
		Correct: validation.IsCorrectAnswer(question.Answer, guess),
		Answer:  question.Answer,
	}, nil
}

func (s *QuestionService) quizPool(ctx context.Context, categoryID int) ([]domain.Question, error) {
	if categoryID == domain.AllCategories {
		return s.questions.List(ctx)
	}
	return s.questions.ListByCategory(ctx, categoryID)
}
