// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a task payload fails validation.
	// Specific validation failures wrap this error so callers can match
	// the whole family with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when stored or submitted data is not
	// in the expected format.
	ErrInvalidFormat = errors.New("invalid format")
)
