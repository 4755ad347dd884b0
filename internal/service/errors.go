package service

import "github.com/juju/errors"

// Error kinds returned by QuestionService. Callers test for them with
// errors.Is; the HTTP layer maps each kind to a status code.
const (
	ErrNotFound      = errors.NotFound
	ErrBadRequest    = errors.BadRequest
	ErrUnprocessable = errors.ConstError("unprocessable")
)

func notFound(err error, format string, args ...any) error {
	return errors.WithType(errors.Annotatef(err, format, args...), ErrNotFound)
}

func unprocessable(err error, format string, args ...any) error {
	return errors.WithType(errors.Annotatef(err, format, args...), ErrUnprocessable)
}
