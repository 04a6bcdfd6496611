package domain

import "errors"

// Error kinds. Every error returned by a service unwraps to one of these so the
// presentation layer can pick a status code without knowing the specific error.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("authentication failed")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource was modified concurrently")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func NewValidationError(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

func NewAuthError(msg string) error {
	return &kindError{kind: ErrUnauthenticated, msg: msg}
}

func NewForbiddenError(msg string) error {
	return &kindError{kind: ErrForbidden, msg: msg}
}

func NewNotFoundError(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

func NewConflictError(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}
