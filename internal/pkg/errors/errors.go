package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrForbidden marks a business rule veto.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
