package api

import (
	"errors"
	"net/http"

	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Repository and unknown errors are 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidAudience):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	default:
		return "Internal server error"
	}
}

// HandleAPIError writes the error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
}

// MethodNotAllowed answers known routes hit with the wrong method with a JSON 405.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}
