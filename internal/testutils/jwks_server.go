package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// JWKSServer serves a mutable key set and counts fetches.
type JWKSServer struct {
	*httptest.Server

	mu     sync.RWMutex
	keys   []*TestKeyPair
	status int

	fetches atomic.Int64
}

// NewJWKSServer starts a JWKS endpoint publishing keys. It is closed on cleanup.
func NewJWKSServer(t *testing.T, keys ...*TestKeyPair) *JWKSServer {
	t.Helper()
	s := &JWKSServer{keys: keys, status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *JWKSServer) serve(w http.ResponseWriter, r *http.Request) {
	s.fetches.Add(1)

	s.mu.RLock()
	status := s.status
	jwks := make([]map[string]any, 0, len(s.keys))
	for _, k := range s.keys {
		jwks = append(jwks, k.PublicJWK())
	}
	s.mu.RUnlock()

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"keys": jwks})
}

// SetKeys replaces the published key set.
func (s *JWKSServer) SetKeys(keys ...*TestKeyPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = keys
}

// SetStatus makes the endpoint answer with status (http.StatusOK restores it).
func (s *JWKSServer) SetStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Fetches returns how many times the key set was requested.
func (s *JWKSServer) Fetches() int {
	return int(s.fetches.Load())
}
