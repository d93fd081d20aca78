// Package testutils provides testing utilities for the product API.
//
// This package contains helpers for:
//  1. Minting RS256 tokens and serving them through a fake JWKS endpoint
//  2. Building product fixtures
//  3. Running httptest servers and decoding JSON responses
//
// # Tokens
//
//	keys := testutils.NewTestKeyPair(t, "kid-1")
//	jwks := testutils.NewJWKSServer(t, keys)
//	token := keys.MustSignToken(t, testutils.TokenOptions{
//	    Username: "alice",
//	    RealmRoles: []string{"optimal_reader"},
//	})
package testutils
