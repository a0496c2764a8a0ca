// Package apperr defines the error kinds shared by every layer. Errors are
// wrapped with context on the way up and matched with errors.Is at the HTTP
// boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key or a foreign-key target is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for duplicate keys and for deletes blocked by
	// dependent rows.
	ErrConflict = errors.New("conflict")

	// ErrInvalidImage is returned when uploaded bytes do not decode as an image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrIOFailure covers storage and file I/O errors.
	ErrIOFailure = errors.New("io failure")

	// ErrInvalidInput is returned when a request fails field validation.
	ErrInvalidInput = errors.New("invalid input")
)

// NotFound formats a message and wraps ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Conflict formats a message and wraps ErrConflict.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Invalid formats a message and wraps ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}
