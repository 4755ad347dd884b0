package service

import (
	"context"
	"math/rand"
	"slices"

	"github.com/juju/errors"
	"github.com/zizouhuweidi/trivia/internal/domain"
	"github.com/zizouhuweidi/trivia/internal/logging"
)

// QuestionsPerPage is the fixed page size for every paginated listing
const QuestionsPerPage = 10

// Logger is the subset of the application logger used by the service
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// QuestionService implements the trivia operations over the question and
// category repositories. It keeps no state between calls.
type QuestionService struct {
	questions  domain.QuestionRepository
	categories domain.CategoryRepository
	history    domain.QuizHistory
	events     domain.EventPublisher
	logger     Logger
	pick       func(n int) int
}

// Option configures optional QuestionService collaborators
type Option func(*QuestionService)

// WithQuizHistory enables server-side quiz history
func WithQuizHistory(history domain.QuizHistory) Option {
	return func(s *QuestionService) { s.history = history }
}

// WithEventPublisher publishes question changes to publisher
func WithEventPublisher(publisher domain.EventPublisher) Option {
	return func(s *QuestionService) { s.events = publisher }
}

// WithLogger sets the service logger
func WithLogger(logger Logger) Option {
	return func(s *QuestionService) { s.logger = logger }
}

// WithPicker replaces the random index source used by the quiz. pick(n)
// must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *QuestionService) { s.pick = pick }
}

// NewQuestionService creates a new question service
func NewQuestionService(questions domain.QuestionRepository, categories domain.CategoryRepository, opts ...Option) *QuestionService {
	s := &QuestionService{
		questions:  questions,
		categories: categories,
		logger:     logging.Discard(),
		pick:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CategoryList is the result of ListCategories
type CategoryList struct {
	Categories      map[int]string
	TotalCategories int
}

// QuestionPage is one page of questions plus the categories it references
type QuestionPage struct {
	Questions       []domain.Question
	Categories      map[int]string
	CurrentCategory map[int]string
	TotalQuestions  int
}

// QuestionChange is the result of creating or deleting a question
type QuestionChange struct {
	ID               int
	CurrentQuestions []domain.Question
	TotalQuestions   int
}

// Paginate returns the given page of items. Pages start at 1; lower values
// are treated as 1 and pages past the end are empty.
func Paginate(page int, items []domain.Question) []domain.Question {
	if page < 1 {
		page = 1
	}
	// compare page counts first so large pages cannot overflow the offset
	pages := (len(items) + QuestionsPerPage - 1) / QuestionsPerPage
	if page-1 >= pages {
		return []domain.Question{}
	}
	start := (page - 1) * QuestionsPerPage
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}

// ListCategories returns every category keyed by id
func (s *QuestionService) ListCategories(ctx context.Context) (*CategoryList, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, unprocessable(err, "listing categories")
	}

	return &CategoryList{
		Categories:      domain.CategoryMap(categories),
		TotalCategories: len(categories),
	}, nil
}

// ListQuestions returns a page of all questions
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, unprocessable(err, "listing questions")
	}

	current := Paginate(page, questions)
	if len(current) == 0 {
		return nil, errors.NotFoundf("questions page %d", page)
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, unprocessable(err, "listing categories")
	}
	all := domain.CategoryMap(categories)

	onPage := make(map[int]string)
	for _, q := range current {
		if t, ok := all[q.Category]; ok {
			onPage[q.Category] = t
		}
	}

	return &QuestionPage{
		Questions:       current,
		Categories:      all,
		CurrentCategory: onPage,
		TotalQuestions:  len(questions),
	}, nil
}

// DeleteQuestion removes a question and returns the first page of the rest
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int) (*QuestionChange, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, s.questionError(err, id)
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return nil, s.questionError(err, id)
	}
	s.logger.Debugf("deleted question %d", id)

	change, err := s.firstPage(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventQuestionDeleted, *question)
	return change, nil
}

// CreateQuestion stores a new question. Field contents are passed to
// storage as given.
func (s *QuestionService) CreateQuestion(ctx context.Context, question, answer string, difficulty, category int) (*QuestionChange, error) {
	q := domain.Question{
		Question:   question,
		Answer:     answer,
		Difficulty: difficulty,
		Category:   category,
	}
	if err := s.questions.Create(ctx, &q); err != nil {
		return nil, unprocessable(err, "creating question")
	}
	s.logger.Debugf("created question %d in category %d", q.ID, q.Category)

	change, err := s.firstPage(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventQuestionCreated, q)
	return change, nil
}

// SearchQuestions returns a page of questions whose text contains term,
// ignoring case. An empty term matches every question.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	matches, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, unprocessable(err, "searching questions for %q", term)
	}

	current := Paginate(page, matches)
	onPage, err := s.categoriesOf(ctx, current)
	if err != nil {
		return nil, err
	}

	return &QuestionPage{
		Questions:       current,
		CurrentCategory: onPage,
		TotalQuestions:  len(matches),
	}, nil
}

// ListByCategory returns a page of the questions in one category. An
// unknown category is unprocessable; a known one with nothing on the
// requested page is not found.
func (s *QuestionService) ListByCategory(ctx context.Context, categoryID, page int) (*QuestionPage, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, unprocessable(err, "getting category %d", categoryID)
	}

	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, unprocessable(err, "listing questions of category %d", categoryID)
	}

	current := Paginate(page, questions)
	if len(current) == 0 {
		return nil, errors.NotFoundf("questions of category %d on page %d", categoryID, page)
	}

	return &QuestionPage{
		Questions:       current,
		CurrentCategory: map[int]string{category.ID: category.Type},
		TotalQuestions:  len(questions),
	}, nil
}

func (s *QuestionService) firstPage(ctx context.Context, id int) (*QuestionChange, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, unprocessable(err, "listing questions")
	}
	return &QuestionChange{
		ID:               id,
		CurrentQuestions: Paginate(1, questions),
		TotalQuestions:   len(questions),
	}, nil
}

// categoriesOf looks up the categories referenced by questions in one query
func (s *QuestionService) categoriesOf(ctx context.Context, questions []domain.Question) (map[int]string, error) {
	ids := make([]int, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.Category)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	categories, err := s.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, unprocessable(err, "getting categories %v", ids)
	}
	return domain.CategoryMap(categories), nil
}

func (s *QuestionService) questionError(err error, id int) error {
	if errors.Is(err, domain.ErrQuestionNotFound) {
		return notFound(err, "question %d", id)
	}
	return unprocessable(err, "question %d", id)
}

func (s *QuestionService) publish(eventType string, q domain.Question) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.QuestionEvent{Type: eventType, Question: q})
}
