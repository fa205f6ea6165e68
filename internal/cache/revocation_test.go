package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryRevocationStore().(*memoryRevocationStore)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "jti-expired", now.Add(-time.Minute)))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-expired")
	require.NoError(t, err)
	assert.False(t, revoked, "already expired tokens are not stored")

	revoked, err = store.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	// 有効期限を過ぎたら失効情報は消える
	now = now.Add(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, store.revoked)
}

func TestNopCache_AlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := NewNopCache()

	require.NoError(t, c.Set(ctx, "k", []string{"a"}, time.Minute))
	var dst []string
	hit, err := c.Get(ctx, "k", &dst)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.DeletePrefix(ctx, "k"))
}
