package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zizouhuweidi/trivia/internal/logging"
	"github.com/zizouhuweidi/trivia/internal/repository/sqlite"
	"github.com/zizouhuweidi/trivia/internal/service"
	"github.com/zizouhuweidi/trivia/internal/testutil"
)

type testServer struct {
	echo  *echo.Echo
	store *sqlite.Store
}

func newTestServer(t *testing.T, observer QuizObserver, opts ...service.Option) *testServer {
	t.Helper()
	store := testutil.SeededStore(t)
	svc := service.NewQuestionService(store.Questions(), store.Categories(), opts...)

	e := NewEcho(logging.Discard(), "1M")
	NewQuestionHandler(svc, observer).Register(e)
	return &testServer{echo: e, store: store}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(code), body["error"])
	assert.Equal(t, message, body["message"])
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(4), body["total_categories"])
	assert.Equal(t, map[string]any{"1": "Science", "2": "Art", "3": "Geography", "4": "History"}, body["categories"])
}

func TestListQuestions(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["questions"], 5)
	assert.Equal(t, float64(5), body["total_questions"])
	assert.Len(t, body["categories"], 4)
	assert.Equal(t, map[string]any{"1": "Science", "2": "Art", "3": "Geography"}, body["current_category"])

	first := body["questions"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{
		"id":         float64(1),
		"question":   "What is the heaviest organ in the human body?",
		"answer":     "The Liver",
		"difficulty": float64(4),
		"category":   float64(1),
	}, first)
}

func TestListQuestions_NoCategories(t *testing.T) {
	questions := testutil.SeededStore(t).Questions()
	svc := service.NewQuestionService(questions, testutil.NewStore(t).Categories())
	e := NewEcho(logging.Discard(), "1M")
	NewQuestionHandler(svc, nil).Register(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	require.Contains(t, body, "categories")
	assert.Equal(t, map[string]any{}, body["categories"])
	assert.Equal(t, map[string]any{}, body["current_category"])
	assert.Len(t, body["questions"], 5)
}

func TestListQuestions_PageParam(t *testing.T) {
	s := newTestServer(t, nil)
	testutil.AddQuestions(t, s.store, 10, 4)

	rec := s.do(http.MethodGet, "/questions?page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["questions"], 5)

	for _, page := range []string{"abc", "0", "-1", ""} {
		rec := s.do(http.MethodGet, "/questions?page="+page, "")
		require.Equal(t, http.StatusOK, rec.Code, "page=%q", page)
		questions := decode(t, rec)["questions"].([]any)
		assert.Len(t, questions, 10, "page=%q", page)
		assert.Equal(t, float64(1), questions[0].(map[string]any)["id"])
	}
}

func TestListQuestions_PageBeyondData(t *testing.T) {
	s := newTestServer(t, nil)
	assertError(t, s.do(http.MethodGet, "/questions?page=1000", ""), http.StatusNotFound, "resource not found")
	assertError(t, s.do(http.MethodGet, "/questions?page=922337203685477582", ""), http.StatusNotFound, "resource not found")
}

func TestDeleteQuestion(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodDelete, "/questions/2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["deleted"])
	assert.Equal(t, float64(4), body["total_questions"])
	assert.Len(t, body["current_questions"], 4)

	assertError(t, s.do(http.MethodDelete, "/questions/2", ""), http.StatusNotFound, "resource not found")
}

func TestDeleteQuestion_BadID(t *testing.T) {
	s := newTestServer(t, nil)

	assertError(t, s.do(http.MethodDelete, "/questions/1000", ""), http.StatusNotFound, "resource not found")
	assertError(t, s.do(http.MethodDelete, "/questions/abc", ""), http.StatusNotFound, "resource not found")
}

func TestCreateQuestion(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/questions",
		`{"question":"What is the capital of France?","answer":"Paris","difficulty":1,"category":"3"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(6), body["created"])
	assert.Equal(t, float64(6), body["total_questions"])
	assert.Len(t, body["current_questions"], 6)

	rec = s.do(http.MethodGet, "/categories/3/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["total_questions"])
}

func TestCreateQuestion_MalformedBody(t *testing.T) {
	s := newTestServer(t, nil)

	assertError(t, s.do(http.MethodPost, "/questions", `{"question":`), http.StatusBadRequest, "bad request")
	assertError(t, s.do(http.MethodPost, "/questions", `{"difficulty":"hard"}`), http.StatusBadRequest, "bad request")
}

func TestSearchQuestions(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/search/questions", `{"searchTerm":"title"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["questions"], 2)
	assert.Equal(t, float64(2), body["total_questions"])
	assert.Equal(t, map[string]any{"2": "Art"}, body["current_category"])
	assert.NotContains(t, body, "categories")
}

func TestSearchQuestions_NoMatch(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/search/questions", `{"searchTerm":"zebra"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, []any{}, body["questions"])
	assert.Equal(t, map[string]any{}, body["current_category"])
	assert.Equal(t, float64(0), body["total_questions"])
}

func TestSearchQuestions_HugePage(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodPost, "/search/questions?page=922337203685477582", `{"searchTerm":"title"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, []any{}, body["questions"])
	assert.Equal(t, float64(2), body["total_questions"])
}

func TestListByCategory(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/categories/1/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["total_questions"])
	assert.Equal(t, map[string]any{"1": "Science"}, body["current_category"])
	for _, q := range body["questions"].([]any) {
		assert.Equal(t, float64(1), q.(map[string]any)["category"])
	}
}

func TestListByCategory_Errors(t *testing.T) {
	s := newTestServer(t, nil)

	assertError(t, s.do(http.MethodGet, "/categories/99/questions", ""), http.StatusUnprocessableEntity, "unprocessable")
	assertError(t, s.do(http.MethodGet, "/categories/4/questions", ""), http.StatusNotFound, "resource not found")
	assertError(t, s.do(http.MethodGet, "/categories/science/questions", ""), http.StatusNotFound, "resource not found")
}

func TestRouterErrors(t *testing.T) {
	s := newTestServer(t, nil)

	assertError(t, s.do(http.MethodGet, "/nowhere", ""), http.StatusNotFound, "resource not found")
	assertError(t, s.do(http.MethodPatch, "/questions", ""), http.StatusMethodNotAllowed,
		"The method is not allowed for the requested URL.")
	assertError(t, s.do(http.MethodGet, "/questions/1", ""), http.StatusMethodNotAllowed,
		"The method is not allowed for the requested URL.")
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodDelete)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "GET,POST,DELETE", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Equal(t, "Content-Type,Authorization,true", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}
