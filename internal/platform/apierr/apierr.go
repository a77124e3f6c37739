package apierr

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/yungbote/publisher-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(code, format string, args ...any) *Error {
	return New(http.StatusNotFound, code, wrap(pkgerrors.ErrNotFound, format, args...))
}

func Conflict(code, format string, args ...any) *Error {
	return New(http.StatusConflict, code, wrap(pkgerrors.ErrConflict, format, args...))
}

func Forbidden(code, format string, args ...any) *Error {
	return New(http.StatusForbidden, code, wrap(pkgerrors.ErrForbidden, format, args...))
}

func BadRequest(code, format string, args ...any) *Error {
	return New(http.StatusBadRequest, code, wrap(pkgerrors.ErrInvalidArgument, format, args...))
}

// wrap keeps the sentinel reachable through errors.Is while leading the
// message with the caller's detail.
func wrap(sentinel error, format string, args ...any) error {
	if format == "" {
		return sentinel
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
