package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/optimal-labs/optimal-api/internal/service/auth"
)

// Authorizer checks a bearer token and returns the caller identity.
// It is implemented by *auth.Guard.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthMiddleware enforces the bearer token and role requirement for routes.
type AuthMiddleware struct {
	guard Authorizer
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(guard Authorizer) *AuthMiddleware {
	return &AuthMiddleware{
		guard: guard,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds the caller identity to the request context for authorized requests.
// Missing or invalid tokens get 401, a valid token without the role gets 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)

		identity, err := m.guard.Authorize(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrForbidden):
				shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Forbidden", err,
					shared.WithElevatedLogLevel())
			case errors.Is(err, auth.ErrUnauthenticated):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Unauthorized", err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					"Internal server error", err)
			}
			return
		}

		ctx := shared.WithIdentity(r.Context(), *identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively; anything else yields "".
func BearerToken(r *http.Request) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
