package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessions_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	require.NoError(t, s.Open(ctx, "t1", "u1", time.Minute))
	assert.Error(t, s.Open(ctx, "t1", "u2", time.Minute))

	userID, err := s.Lookup(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	require.NoError(t, s.Close(ctx, "t1"))
	userID, err = s.Lookup(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestMemorySessions_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemorySessions()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Open(ctx, "t1", "u1", time.Minute))
	now = now.Add(2 * time.Minute)

	userID, err := s.Lookup(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
}
