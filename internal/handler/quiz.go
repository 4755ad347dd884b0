package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/metrics"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuizRequest represents the request for the next quiz question.
// quiz_category.id 0 draws from every category.
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
	QuizID            string        `json:"quiz_id" validate:"omitempty,max=64"`
}

// QuizCategory selects the category a quiz draws from
type QuizCategory struct {
	ID   intOrString `json:"id"`
	Type string      `json:"type"`
}

// QuizResponse carries the next question, or null once the category is
// exhausted
type QuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
	QuizID   string           `json:"quiz_id,omitempty"`
}

// AnswerRequest represents a guess at a question's answer
type AnswerRequest struct {
	QuestionID int    `json:"question_id" validate:"required,gt=0"`
	Answer     string `json:"answer" validate:"required"`
}

// AnswerResponse reports whether a guess was correct
type AnswerResponse struct {
	Success bool   `json:"success"`
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// NextQuizQuestion returns a random question not asked before
func (h *QuestionHandler) NextQuizQuestion(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	}

	result, err := h.service.NextQuizQuestion(c.Request().Context(), service.QuizRequest{
		PreviousQuestions: req.PreviousQuestions,
		CategoryID:        int(req.QuizCategory.ID),
		QuizID:            req.QuizID,
	})
	if err != nil {
		return serviceError(err)
	}

	if h.observer != nil {
		outcome := metrics.QuizServed
		if result.Question == nil {
			outcome = metrics.QuizExhausted
		}
		h.observer.ObserveQuiz(outcome)
	}

	return c.JSON(http.StatusOK, QuizResponse{
		Success:  true,
		Question: result.Question,
		QuizID:   result.QuizID,
	})
}

// CheckAnswer scores a guess against a question's answer
func (h *QuestionHandler) CheckAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	result, err := h.service.CheckAnswer(c.Request().Context(), req.QuestionID, req.Answer)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, AnswerResponse{
		Success: true,
		Correct: result.Correct,
		Answer:  result.Answer,
	})
}
