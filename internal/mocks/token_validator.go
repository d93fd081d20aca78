package mocks

import (
	"context"
	"sync/atomic"

	"github.com/optimal-labs/optimal-api/internal/service/auth"
)

// MockTokenValidator implements auth.TokenValidator for testing
type MockTokenValidator struct {
	// ValidateFn allows test cases to mock the Validate behavior
	ValidateFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when ValidateFn isn't defined
	Claims *auth.Claims
	Err    error

	calls atomic.Int64
}

// Ensure MockTokenValidator implements auth.TokenValidator interface
var _ auth.TokenValidator = (*MockTokenValidator)(nil)

// Validate implements the auth.TokenValidator interface
func (m *MockTokenValidator) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	m.calls.Add(1)
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}
	return m.Claims, m.Err
}

// Calls returns how many times Validate ran.
func (m *MockTokenValidator) Calls() int {
	return int(m.calls.Load())
}

// ReaderClaims returns claims for username holding roles in the realm scope.
func ReaderClaims(username string, roles ...string) *auth.Claims {
	return &auth.Claims{
		PreferredUsername: username,
		RealmAccess:       auth.Access{Roles: roles},
	}
}
