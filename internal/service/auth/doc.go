// Package auth verifies Keycloak-issued bearer tokens and decides whether a
// caller may use the product endpoints.
//
// KeycloakValidator checks RS256 signatures against keys served by a
// JWKSCache, ExtractIdentity turns validated claims into a domain.Identity,
// and Guard combines both with the required-role check.
package auth
