package auth

import "errors"

// Token validation errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrInvalidAudience indicates the token was issued for another client
	ErrInvalidAudience = errors.New("authentication token audience mismatch")

	// ErrKeyNotFound indicates the token's kid is not among the published signing keys
	ErrKeyNotFound = errors.New("signing key not found for kid")

	// ErrKeySetUnavailable indicates the signing key set could not be fetched
	ErrKeySetUnavailable = errors.New("signing key set unavailable")
)

// Access decision errors
var (
	// ErrUnauthenticated indicates the caller presented no token or an invalid one.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates a valid token that lacks the required role.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)
