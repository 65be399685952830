package utils

import (
	"errors"
	"net/http"
)

// Error kinds. Every AppError wraps exactly one of these so callers can
// branch with errors.Is without caring about the message.
var (
	ErrValidation   = errors.New("validation_error")
	ErrNotFound     = errors.New("not_found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AppError carries a transport status and the messages a client may see.
// Err is for logs only.
type AppError struct {
	StatusCode int
	Messages   []string
	Kind       error
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return e.Kind.Error()
}

func (e *AppError) Is(target error) bool {
	return target == e.Kind
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(messages ...string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Messages: messages, Kind: ErrValidation}
}

// WrapValidationError keeps the storage error for logging while exposing
// only the friendly message.
func WrapValidationError(err error, messages ...string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Messages: messages, Kind: ErrValidation, Err: err}
}

func NewNotFoundError(messages ...string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Messages: messages, Kind: ErrNotFound}
}

func NewUnauthorizedError(messages ...string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Messages: messages, Kind: ErrUnauthorized}
}

// WrapUnauthorizedError keeps why a credential was refused for the logs.
func WrapUnauthorizedError(err error, messages ...string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Messages: messages, Kind: ErrUnauthorized, Err: err}
}

func NewForbiddenError(messages ...string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Messages: messages, Kind: ErrForbidden}
}
