package testutils

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/optimal-labs/optimal-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

// Standard values for token tests.
const (
	// TestAudience is the client id test tokens are issued for.
	TestAudience = "fastapi"

	// TestIssuer is the realm issuer placed in test tokens.
	TestIssuer = "http://keycloak.test/realms/master"

	// TestTokenLifetime is the default lifetime for test access tokens
	TestTokenLifetime = 15 * time.Minute

	testKeyBits = 2048
)

// TestKeyPair is an RSA key with the kid it is published under.
type TestKeyPair struct {
	Kid        string
	PrivateKey *rsa.PrivateKey
	// Alg overrides the published alg; empty means RS256.
	Alg string
}

// NewTestKeyPair generates a fresh RSA key for kid.
func NewTestKeyPair(t *testing.T, kid string) *TestKeyPair {
	t.Helper()
	return NewTestKeyPairBits(t, kid, testKeyBits)
}

// NewTestKeyPairBits generates an RSA key of the given size for kid.
func NewTestKeyPairBits(t *testing.T, kid string, bits int) *TestKeyPair {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err, "Failed to generate RSA key")
	return &TestKeyPair{Kid: kid, PrivateKey: key}
}

// PublicJWK returns the key in JWKS form.
func (k *TestKeyPair) PublicJWK() map[string]any {
	pub := k.PrivateKey.PublicKey
	alg := k.Alg
	if alg == "" {
		alg = "RS256"
	}
	return map[string]any{
		"kid": k.Kid,
		"kty": "RSA",
		"use": "sig",
		"alg": alg,
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// TokenOptions describes the claims of a test token.
// Zero values get sensible defaults: audience TestAudience, issued now,
// expiring after TestTokenLifetime.
type TokenOptions struct {
	Username       string
	Subject        string
	RealmRoles     []string
	ResourceAccess map[string][]string
	Audience       []string
	IssuedAt       time.Time
	ExpiresAt      time.Time
	// OmitKid drops the kid header.
	OmitKid bool
	// Kid overrides the key pair's kid in the header.
	Kid string
}

// Claims builds the auth.Claims described by opts.
func (o TokenOptions) Claims() *auth.Claims {
	issuedAt := o.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}
	expiresAt := o.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = issuedAt.Add(TestTokenLifetime)
	}
	audience := o.Audience
	if audience == nil {
		audience = []string{TestAudience}
	}
	subject := o.Subject
	if subject == "" {
		subject = "f3b0c5d2-0000-4000-8000-000000000001"
	}

	claims := &auth.Claims{
		PreferredUsername: o.Username,
		RealmAccess:       auth.Access{Roles: o.RealmRoles},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TestIssuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if len(o.ResourceAccess) > 0 {
		claims.ResourceAccess = make(map[string]auth.Access, len(o.ResourceAccess))
		for client, roles := range o.ResourceAccess {
			claims.ResourceAccess[client] = auth.Access{Roles: roles}
		}
	}
	return claims
}

// SignToken signs the claims described by opts with RS256.
func (k *TestKeyPair) SignToken(opts TokenOptions) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, opts.Claims())
	switch {
	case opts.OmitKid:
	case opts.Kid != "":
		token.Header["kid"] = opts.Kid
	default:
		token.Header["kid"] = k.Kid
	}
	return token.SignedString(k.PrivateKey)
}

// MustSignToken signs a token or fails the test.
func (k *TestKeyPair) MustSignToken(t *testing.T, opts TokenOptions) string {
	t.Helper()
	token, err := k.SignToken(opts)
	require.NoError(t, err, "Failed to sign test token")
	return token
}

// ReaderToken returns a valid token carrying the optimal_reader realm role.
func (k *TestKeyPair) ReaderToken(t *testing.T) string {
	t.Helper()
	return k.MustSignToken(t, TokenOptions{
		Username:   "reader",
		RealmRoles: []string{auth.DefaultRequiredRole},
	})
}
