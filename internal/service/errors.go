package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
var (
	// ErrNilRepository is returned by constructors when a required repository is missing.
	ErrNilRepository = errors.New("repository cannot be nil")
)

// ProductServiceError is a custom error type for product service errors.
// The wrapped error is kept so callers can still match store.ErrRepository.
type ProductServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ProductServiceError.
func (e *ProductServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("product service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("product service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProductServiceError) Unwrap() error {
	return e.Err
}

// NewProductServiceError creates a new ProductServiceError.
func NewProductServiceError(operation, message string, err error) *ProductServiceError {
	return &ProductServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
