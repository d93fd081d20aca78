package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrRepository is returned when the underlying data source fails
	// (connection refused, query error, scan failure). Callers must not mask it.
	ErrRepository = errors.New("repository failure")

	// ErrNotImplemented is returned when a store method is not yet implemented.
	// This is particularly useful for stub implementations.
	ErrNotImplemented = errors.New("method not implemented")

	// ErrInvalidEntity is returned when a row read from the store fails
	// domain validation. Check the wrapped error for specific validation details.
	ErrInvalidEntity = fmt.Errorf("%w: invalid entity", ErrRepository)
)

// IsRepositoryError checks if the error is any kind of repository failure.
func IsRepositoryError(err error) bool {
	return errors.Is(err, ErrRepository)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "product")
	Operation string // The operation that failed (e.g., "search", "list")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
// A StoreError always matches ErrRepository.
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRepository}
	}
	return []error{ErrRepository, e.Err}
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
