package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/optimal-labs/optimal-api/internal/platform/logger"
)

// DefaultClockSkew is the leeway applied to exp/nbf/iat checks.
const DefaultClockSkew = 2 * time.Minute

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	// Validate checks signature, algorithm, time claims and audience.
	// Errors wrap one of ErrInvalidToken, ErrExpiredToken, ErrTokenNotYetValid,
	// ErrInvalidAudience, ErrKeyNotFound or ErrKeySetUnavailable.
	Validate(ctx context.Context, token string) (*Claims, error)
}

// KeycloakValidator validates RS256 tokens issued by a Keycloak realm.
type KeycloakValidator struct {
	keys      KeySource
	audience  string
	clockSkew time.Duration
	timeFunc  func() time.Time // Injectable for testing
	logger    *slog.Logger
}

// Ensure KeycloakValidator implements TokenValidator interface
var _ TokenValidator = (*KeycloakValidator)(nil)

// ValidatorOption configures a KeycloakValidator.
type ValidatorOption func(*KeycloakValidator)

// WithClockSkew overrides DefaultClockSkew.
func WithClockSkew(skew time.Duration) ValidatorOption {
	return func(v *KeycloakValidator) { v.clockSkew = skew }
}

// WithTimeFunc injects the clock used for time-based claims.
func WithTimeFunc(now func() time.Time) ValidatorOption {
	return func(v *KeycloakValidator) { v.timeFunc = now }
}

// WithValidatorLogger sets the validator's fallback logger.
func WithValidatorLogger(log *slog.Logger) ValidatorOption {
	return func(v *KeycloakValidator) {
		if log != nil {
			v.logger = log
		}
	}
}

// NewKeycloakValidator creates a validator that requires aud to contain audience.
func NewKeycloakValidator(keys KeySource, audience string, opts ...ValidatorOption) (*KeycloakValidator, error) {
	if keys == nil {
		return nil, errors.New("key source cannot be nil")
	}
	if audience == "" {
		return nil, errors.New("audience cannot be empty")
	}

	v := &KeycloakValidator{
		keys:      keys,
		audience:  audience,
		clockSkew: DefaultClockSkew,
		timeFunc:  time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With(slog.String("component", "token_validator"))
	return v, nil
}

// Validate implements TokenValidator.Validate
func (v *KeycloakValidator) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	now := v.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			kid, _ := token.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("%w: token header has no kid", ErrKeyNotFound)
			}
			return v.keys.Key(ctx, kid)
		},
		parserOpts...)

	if err != nil {
		mapped := mapValidationError(err)
		log.Debug("token validation failed",
			slog.String("reason", mapped.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
		return nil, mapped
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	log.Debug("token validated successfully",
		slog.String("subject", claims.Subject),
		slog.String("username", claims.PreferredUsername))
	return claims, nil
}

// mapValidationError translates jwt and key lookup failures into package errors.
func mapValidationError(err error) error {
	switch {
	case errors.Is(err, ErrKeySetUnavailable):
		return ErrKeySetUnavailable
	case errors.Is(err, ErrKeyNotFound):
		return ErrKeyNotFound
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrInvalidAudience
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: malformed token", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: token is unverifiable", ErrInvalidToken)
	default:
		return ErrInvalidToken
	}
}
