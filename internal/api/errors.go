package api

import (
	"errors"
	"net/http"

	"github.com/rlbaker/todoservice/internal/domain"
	"github.com/rlbaker/todoservice/internal/service"
	"github.com/rlbaker/todoservice/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Default: internal server error (persistence and unknown failures)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		// Validation messages are produced by the domain layer and are
		// safe to show.
		return err.Error()

	case errors.Is(err, service.ErrTaskNotFound),
		store.IsNotFoundError(err):
		return "Task not found"

	case store.IsPersistenceError(err):
		return "Storage backend failure"

	default:
		return "An unexpected error occurred"
	}
}
