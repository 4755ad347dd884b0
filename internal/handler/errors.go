package handler

import (
	"net/http"
	"strings"

	"github.com/juju/errors"
	"github.com/labstack/echo/v4"

	"github.com/zizouhuweidi/trivia/internal/service"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "The method is not allowed for the requested URL.",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

func errorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return strings.ToLower(http.StatusText(code))
}

// ErrorHandler renders every error, including router 404 and 405, as an
// ErrorResponse. Errors that are not *echo.HTTPError are internal.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Internal != nil {
			err = he.Internal
		}
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	} else {
		c.Logger().Debugf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{
			Success: false,
			Error:   code,
			Message: errorMessage(code),
		})
	}
	if err != nil {
		c.Logger().Errorf("failed to write error response: %v", err)
	}
}

// serviceError maps a service error kind to its HTTP status. Unclassified
// failures are unprocessable.
func serviceError(err error) error {
	code := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, service.ErrBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	}
	return echo.NewHTTPError(code).SetInternal(err)
}
