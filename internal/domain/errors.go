package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrProductNameEmpty is returned when a product has no name.
	ErrProductNameEmpty = errors.New("product name cannot be empty")

	// ErrProductURLEmpty is returned when a product has no URL.
	ErrProductURLEmpty = errors.New("product url cannot be empty")

	// ErrNegativePrice is returned when a product price is below zero.
	ErrNegativePrice = errors.New("product price cannot be negative")
)

// ValidationError carries the offending field alongside the wrapped cause.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
