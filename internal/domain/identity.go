package domain

import "slices"

// Identity is the caller derived from a validated bearer token.
// It lives only for the duration of one request.
type Identity struct {
	Username string
	// Roles is deduplicated and sorted.
	Roles []string
}

// NewIdentity builds an Identity, deduplicating and sorting roles.
func NewIdentity(username string, roles ...[]string) Identity {
	merged := make([]string, 0)
	for _, group := range roles {
		for _, role := range group {
			if role != "" {
				merged = append(merged, role)
			}
		}
	}
	slices.Sort(merged)
	return Identity{
		Username: username,
		Roles:    slices.Compact(merged),
	}
}

// HasRole reports whether role was granted.
func (i Identity) HasRole(role string) bool {
	_, found := slices.BinarySearch(i.Roles, role)
	return found
}
