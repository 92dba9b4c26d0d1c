// Package apperr defines the error taxonomy shared by the service and HTTP
// layers and maps it onto status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrAuthMissing = errors.New("authorization missing")
	ErrAuthInvalid = errors.New("authorization invalid")
	ErrNotFound    = errors.New("not found")
	ErrStorage     = errors.New("storage failure")
)

// AppError carries a client-facing message and status alongside the sentinel.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, statusCode int, message string) *AppError {
	return &AppError{Err: sentinel, Message: message, StatusCode: statusCode}
}

func Newf(sentinel error, statusCode int, format string, args ...any) *AppError {
	return &AppError{Err: sentinel, Message: fmt.Sprintf(format, args...), StatusCode: statusCode}
}

// Validation, NotFound and Unauthorized are shorthands for the common cases.
func Validation(message string) *AppError {
	return New(ErrValidation, http.StatusBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(ErrNotFound, http.StatusNotFound, message)
}

func Unauthorized(message string) *AppError {
	return New(ErrAuthMissing, http.StatusUnauthorized, message)
}

// Storage wraps a backend failure. The cause is kept for logging only.
func Storage(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// HTTPStatusCode resolves the response status for err.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthMissing):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthInvalid):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Errors without an
// AppError in their chain never leak their details.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
