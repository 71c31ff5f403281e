package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// For users this is the "username exists" outcome of registration.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates bad credentials, an unknown user or a missing identity.
// It intentionally does not say which of those it was.
var ErrUnauthorized = errors.New("unauthorized")

// ErrStorage indicates that the underlying store was unreachable or a write failed.
var ErrStorage = errors.New("storage error")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps a driver error in a 500 AppError so that
// errors.Is(err, ErrStorage) holds while the original cause stays reachable.
func NewStorageError(op string, err error) error {
	return NewAppError(http.StatusInternalServerError, op, errors.Join(ErrStorage, err))
}
