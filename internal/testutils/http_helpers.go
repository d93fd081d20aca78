package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestServer creates a httptest server with the given handler.
// Automatically registers cleanup via t.Cleanup().
func CreateTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
	})
	return server
}

// NewAuthorizedRequest builds a GET request with a bearer token.
// An empty token leaves the Authorization header unset.
func NewAuthorizedRequest(t *testing.T, target, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// DecodeJSON decodes a recorder body into T.
func DecodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "Failed to decode response body: %s", rec.Body.String())
	return out
}
