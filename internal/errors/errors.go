// Package errors provides the sentinel taxonomy shared by every domain package. Domain
// errors wrap one of the sentinels so handlers and metrics can classify them without
// knowing the domain.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrLocked indicates the resource exists but is temporarily locked.
	ErrLocked = errors.New("locked")
)

// clientErrors are the sentinels describing a request the caller got wrong, as opposed to
// a fault of the service or its dependencies.
var clientErrors = []error{
	ErrNotFound,
	ErrConflict,
	ErrInvalidInput,
	ErrUnauthorized,
	ErrForbidden,
	ErrLocked,
}

// IsClientError reports whether err wraps one of the caller-facing sentinels.
func IsClientError(err error) bool {
	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
