package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/service"
)

// QuestionService is the set of trivia operations served over HTTP
type QuestionService interface {
	ListCategories(ctx context.Context) (*service.CategoryList, error)
	ListQuestions(ctx context.Context, page int) (*service.QuestionPage, error)
	DeleteQuestion(ctx context.Context, id int) (*service.QuestionChange, error)
	CreateQuestion(ctx context.Context, question, answer string, difficulty, category int) (*service.QuestionChange, error)
	SearchQuestions(ctx context.Context, term string, page int) (*service.QuestionPage, error)
	ListByCategory(ctx context.Context, categoryID, page int) (*service.QuestionPage, error)
	NextQuizQuestion(ctx context.Context, req service.QuizRequest) (*service.QuizQuestion, error)
	CheckAnswer(ctx context.Context, questionID int, guess string) (*service.AnswerResult, error)
}

// QuizObserver is told the outcome of every served quiz request
type QuizObserver interface {
	ObserveQuiz(outcome string)
}

// QuestionHandler handles the trivia HTTP requests
type QuestionHandler struct {
	service  QuestionService
	observer QuizObserver
}

// NewQuestionHandler creates a new question handler. observer may be nil.
func NewQuestionHandler(service QuestionService, observer QuizObserver) *QuestionHandler {
	return &QuestionHandler{
		service:  service,
		observer: observer,
	}
}

// Register registers the trivia routes. Middleware in mutating applies only
// to routes that change or score questions.
func (h *QuestionHandler) Register(e *echo.Echo, mutating ...echo.MiddlewareFunc) {
	e.GET("/categories", h.ListCategories)
	e.GET("/categories/:id/questions", h.ListByCategory)
	e.GET("/questions", h.ListQuestions)
	e.POST("/questions", h.CreateQuestion, mutating...)
	e.DELETE("/questions/:id", h.DeleteQuestion, mutating...)
	e.POST("/search/questions", h.SearchQuestions)
	e.POST("/quizzes", h.NextQuizQuestion)
	e.POST("/quizzes/answers", h.CheckAnswer, mutating...)
	e.GET("/health", h.Health)
}

// CategoriesResponse lists every category
type CategoriesResponse struct {
	Success         bool           `json:"success"`
	Categories      map[int]string `json:"categories"`
	TotalCategories int            `json:"total_categories"`
}

// QuestionsResponse is one page of search or category results
type QuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	CurrentCategory map[int]string    `json:"current_category"`
	TotalQuestions  int               `json:"total_questions"`
}

// ListQuestionsResponse is one page of all questions. Categories is always
// present, even when empty.
type ListQuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	Categories      map[int]string    `json:"categories"`
	CurrentCategory map[int]string    `json:"current_category"`
	TotalQuestions  int               `json:"total_questions"`
}

// DeletedResponse reports a deleted question and the first page of the rest
type DeletedResponse struct {
	Success          bool              `json:"success"`
	Deleted          int               `json:"deleted"`
	CurrentQuestions []domain.Question `json:"current_questions"`
	TotalQuestions   int               `json:"total_questions"`
}

// CreatedResponse reports a created question and the first page of all
type CreatedResponse struct {
	Success          bool              `json:"success"`
	Created          int               `json:"created"`
	CurrentQuestions []domain.Question `json:"current_questions"`
	TotalQuestions   int               `json:"total_questions"`
}

// CreateQuestionRequest represents the request to create a new question
type CreateQuestionRequest struct {
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Difficulty intOrString `json:"difficulty"`
	Category   intOrString `json:"category"`
}

// SearchRequest represents a question search
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// ListCategories returns every category
func (h *QuestionHandler) ListCategories(c echo.Context) error {
	result, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, CategoriesResponse{
		Success:         true,
		Categories:      result.Categories,
		TotalCategories: result.TotalCategories,
	})
}

// ListQuestions returns a page of all questions
func (h *QuestionHandler) ListQuestions(c echo.Context) error {
	result, err := h.service.ListQuestions(c.Request().Context(), pageParam(c))
	if err != nil {
		return serviceError(err)
	}

	categories := result.Categories
	if categories == nil {
		categories = map[int]string{}
	}
	return c.JSON(http.StatusOK, ListQuestionsResponse{
		Success:         true,
		Questions:       result.Questions,
		Categories:      categories,
		CurrentCategory: result.CurrentCategory,
		TotalQuestions:  result.TotalQuestions,
	})
}

// DeleteQuestion deletes a question by id
func (h *QuestionHandler) DeleteQuestion(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	result, err := h.service.DeleteQuestion(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{
		Success:          true,
		Deleted:          result.ID,
		CurrentQuestions: result.CurrentQuestions,
		TotalQuestions:   result.TotalQuestions,
	})
}

// CreateQuestion creates a new question
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	var req CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	result, err := h.service.CreateQuestion(c.Request().Context(),
		req.Question, req.Answer, int(req.Difficulty), int(req.Category))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, CreatedResponse{
		Success:          true,
		Created:          result.ID,
		CurrentQuestions: result.CurrentQuestions,
		TotalQuestions:   result.TotalQuestions,
	})
}

// SearchQuestions returns a page of questions matching the search term
func (h *QuestionHandler) SearchQuestions(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest).SetInternal(err)
	}

	result, err := h.service.SearchQuestions(c.Request().Context(), req.SearchTerm, pageParam(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, questionsResponse(result))
}

// ListByCategory returns a page of the questions in one category
func (h *QuestionHandler) ListByCategory(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListByCategory(c.Request().Context(), id, pageParam(c))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, questionsResponse(result))
}

// Health reports that the server is up
func (h *QuestionHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"status":  "ok",
	})
}

func questionsResponse(page *service.QuestionPage) QuestionsResponse {
	return QuestionsResponse{
		Success:         true,
		Questions:       page.Questions,
		CurrentCategory: page.CurrentCategory,
		TotalQuestions:  page.TotalQuestions,
	}
}

// pageParam reads the page query parameter. Missing, non-numeric and
// non-positive values mean page 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// idParam reads a numeric :id path parameter. Anything else is a route
// miss.
func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}
