package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/optimal-labs/optimal-api/internal/api/shared"
	"github.com/optimal-labs/optimal-api/internal/mocks"
	"github.com/optimal-labs/optimal-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ""},
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"uppercase scheme", "BEARER abc", "abc"},
		{"basic scheme", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer", ""},
		{"extra spaces", "Bearer   abc  ", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(req))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		validator     *mocks.MockTokenValidator
		wantStatus    int
		wantMessage   string
		wantNext      bool
		wantValidates int
	}{
		{
			name:          "no header",
			validator:     &mocks.MockTokenValidator{Claims: mocks.ReaderClaims("alice", "optimal_reader")},
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Unauthorized",
			wantValidates: 0,
		},
		{
			name:          "wrong scheme",
			header:        "Token abc",
			validator:     &mocks.MockTokenValidator{Claims: mocks.ReaderClaims("alice", "optimal_reader")},
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Unauthorized",
			wantValidates: 0,
		},
		{
			name:          "invalid token",
			header:        "Bearer abc",
			validator:     &mocks.MockTokenValidator{Err: auth.ErrInvalidToken},
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Unauthorized",
			wantValidates: 1,
		},
		{
			name:          "key set unavailable",
			header:        "Bearer abc",
			validator:     &mocks.MockTokenValidator{Err: auth.ErrKeySetUnavailable},
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Unauthorized",
			wantValidates: 1,
		},
		{
			name:          "missing role",
			header:        "Bearer abc",
			validator:     &mocks.MockTokenValidator{Claims: mocks.ReaderClaims("bob", "offline_access")},
			wantStatus:    http.StatusForbidden,
			wantMessage:   "Forbidden",
			wantValidates: 1,
		},
		{
			name:          "authorized",
			header:        "bearer abc",
			validator:     &mocks.MockTokenValidator{Claims: mocks.ReaderClaims("alice", "optimal_reader")},
			wantStatus:    http.StatusOK,
			wantNext:      true,
			wantValidates: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				identity, ok := shared.IdentityFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, "alice", identity.Username)
				w.WriteHeader(http.StatusOK)
			})

			m := NewAuthMiddleware(auth.NewGuard(tt.validator, "", nil))
			req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
			req = req.WithContext(shared.WithTraceID(context.Background(), "trace-auth"))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			assert.Equal(t, tt.wantValidates, tt.validator.Calls())

			if tt.wantMessage != "" {
				var body shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMessage, body.Message)
				assert.NotEmpty(t, body.Detail)
				assert.Equal(t, "trace-auth", body.TraceID)
			}
		})
	}
}
