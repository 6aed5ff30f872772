// Package apperror defines the error taxonomy shared by the stores, the
// connection provider and the services.
//
// Callers never compare error strings. They match on the sentinels with
// errors.Is and pull details out with errors.As:
//
//	if errors.Is(err, apperror.ErrValidation) { ... }
//
//	var se *apperror.StorageError
//	if errors.As(err, &se) { log se.Op }
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")

	// ErrUnauthorized is returned when credentials do not match.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorage marks any failure reported by the database driver.
	ErrStorage = errors.New("storage error")

	// ErrUnavailable means no usable connection could be checked out.
	ErrUnavailable = errors.New("database unavailable")

	// ErrConfig marks a connection configuration that cannot be applied.
	ErrConfig = errors.New("invalid configuration")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized returns an AppError for rejected credentials. The message is
// shown to the user as is, so it must not say which credential was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// StorageError wraps a driver failure together with the store operation that
// produced it, e.g. "posts.find_by_category_id".
//
// errors.Is(err, ErrStorage) is true for every StorageError, and Unwrap
// exposes the driver error so callers can still inspect it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Storage wraps err as a StorageError for op. A nil err yields nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
