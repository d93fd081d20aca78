package auth

import (
	"maps"
	"slices"

	"github.com/optimal-labs/optimal-api/internal/domain"
)

// ExtractIdentity derives the caller identity from validated claims.
// Username is preferred_username, falling back to sub. Roles merge realm
// roles with every client's roles, deduplicated and sorted.
func ExtractIdentity(claims *Claims) domain.Identity {
	if claims == nil {
		return domain.NewIdentity("")
	}

	username := claims.PreferredUsername
	if username == "" {
		username = claims.Subject
	}

	groups := [][]string{claims.RealmAccess.Roles}
	for _, client := range slices.Sorted(maps.Keys(claims.ResourceAccess)) {
		groups = append(groups, claims.ResourceAccess[client].Roles)
	}

	return domain.NewIdentity(username, groups...)
}
