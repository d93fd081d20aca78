package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
)

// DefaultRequiredRole is the role callers need to read products.
const DefaultRequiredRole = "optimal_reader"

// Guard decides whether a bearer token grants access to the product endpoints.
type Guard struct {
	validator    TokenValidator
	requiredRole string
	logger       *slog.Logger
}

// NewGuard creates a Guard. An empty requiredRole means DefaultRequiredRole.
func NewGuard(validator TokenValidator, requiredRole string, log *slog.Logger) *Guard {
	if validator == nil {
		panic("validator cannot be nil")
	}
	if requiredRole == "" {
		requiredRole = DefaultRequiredRole
	}
	if log == nil {
		log = slog.Default()
	}
	return &Guard{
		validator:    validator,
		requiredRole: requiredRole,
		logger:       log.With(slog.String("component", "access_guard")),
	}
}

// RequiredRole returns the role checked by Authorize.
func (g *Guard) RequiredRole() string {
	return g.requiredRole
}

// Authorize validates token and checks the required role.
// It returns an error wrapping ErrUnauthenticated for a missing or invalid
// token and ErrForbidden when the role is absent.
func (g *Guard) Authorize(ctx context.Context, token string) (*domain.Identity, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, ErrMissingToken)
	}

	claims, err := g.validator.Validate(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	identity := ExtractIdentity(claims)
	if !identity.HasRole(g.requiredRole) {
		log.Info("access denied: missing required role",
			slog.String("username", identity.Username),
			slog.String("required_role", g.requiredRole))
		return nil, fmt.Errorf("%w: role %q required", ErrForbidden, g.requiredRole)
	}

	return &identity, nil
}
