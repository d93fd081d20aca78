package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRepositoryError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrRepository",
			err:      ErrRepository,
			expected: true,
		},
		{
			name:     "wrapped ErrRepository",
			err:      fmt.Errorf("list products: %w", ErrRepository),
			expected: true,
		},
		{
			name:     "ErrInvalidEntity",
			err:      ErrInvalidEntity,
			expected: true,
		},
		{
			name:     "StoreError without cause",
			err:      NewStoreError("product", "search", "timeout", nil),
			expected: true,
		},
		{
			name:     "StoreError with cause",
			err:      NewStoreError("product", "list", "query failed", errors.New("connection refused")),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRepositoryError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := context.DeadlineExceeded
	err := NewStoreError("product", "search", "query failed", cause)

	assert.Equal(t, "search operation on product failed: query failed: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrRepository)

	var storeErr *StoreError
	wrapped := fmt.Errorf("service: %w", err)
	if assert.ErrorAs(t, wrapped, &storeErr) {
		assert.Equal(t, "product", storeErr.Entity)
		assert.Equal(t, "search", storeErr.Operation)
	}

	bare := NewStoreError("product", "list", "no rows", nil)
	assert.Equal(t, "list operation on product failed: no rows", bare.Error())
}
