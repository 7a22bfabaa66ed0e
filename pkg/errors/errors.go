// Package errors defines the typed service errors used across the kiosk.
//
// Handlers rely on the Is* predicates to pick a status code: not-found
// errors map to 404, validation errors to 400, everything else to 500.
package errors

import (
	"errors"
	"fmt"
)

// ResourceNotFoundError signals that a referenced resource does not exist.
// No mutation happened when this error is returned.
type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewPartNotFoundError returns a not-found error for a part number.
func NewPartNotFoundError(number string) error {
	return &ResourceNotFoundError{Resource: "part", ID: number}
}

// IsResourceNotFoundError reports whether err is a ResourceNotFoundError.
func IsResourceNotFoundError(err error) bool {
	var notFound *ResourceNotFoundError
	return errors.As(err, &notFound)
}

// ValidationError signals a rejected input. The operation was not attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a validation error with the given message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}
