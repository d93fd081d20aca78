package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/optimal-labs/optimal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "trace id should be a UUID")

	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)

	assert.Equal(t, "abc", GetTraceID(WithTraceID(context.Background(), "abc")))
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	identity := domain.NewIdentity("alice", []string{"optimal_reader"})
	got, ok := IdentityFromContext(WithIdentity(context.Background(), identity))
	require.True(t, ok)
	assert.Equal(t, identity, got)
}
