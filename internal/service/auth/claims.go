package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Access holds the roles granted at one scope (realm or client).
type Access struct {
	Roles []string `json:"roles"`
}

// Claims is the payload of a Keycloak access token.
type Claims struct {
	PreferredUsername string            `json:"preferred_username,omitempty"`
	RealmAccess       Access            `json:"realm_access"`
	ResourceAccess    map[string]Access `json:"resource_access,omitempty"`
	AuthorizedParty   string            `json:"azp,omitempty"`
	jwt.RegisteredClaims
}
