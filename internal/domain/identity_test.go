package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIdentity(t *testing.T) {
	id := NewIdentity("alice",
		[]string{"optimal_reader", "offline_access"},
		[]string{"manage-account", "optimal_reader", ""},
	)

	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, []string{"manage-account", "offline_access", "optimal_reader"}, id.Roles)
	assert.True(t, id.HasRole("optimal_reader"))
	assert.False(t, id.HasRole("admin"))
}

func TestNewIdentityNoRoles(t *testing.T) {
	id := NewIdentity("bob")

	assert.NotNil(t, id.Roles)
	assert.Empty(t, id.Roles)
	assert.False(t, id.HasRole("optimal_reader"))
}
