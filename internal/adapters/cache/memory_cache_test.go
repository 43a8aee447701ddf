package cache

import (
	"context"
	"testing"
	"time"

	"github.com/mailsift/mailsift/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	link := "http://x/unsub"
	stored := &core.Classification{
		IsSpam:             true,
		Reason:             "promotional",
		HasUnsubscribeLink: true,
		IdentifiedLink:     &link,
	}
	c.Set(ctx, "m1", stored, time.Minute)

	got, ok := c.Get(ctx, "m1")
	require.True(t, ok)
	assert.Equal(t, *stored, *got)

	_, ok = c.Get(ctx, "unknown")
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "m1", &core.Classification{Reason: "ham"}, 10*time.Millisecond)

	_, ok := c.Get(ctx, "m1")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get(ctx, "m1")
	assert.False(t, ok, "expired entry must not be served")
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "m1", &core.Classification{Reason: "ham"}, time.Minute)
	require.NoError(t, c.Delete(ctx, "m1"))

	_, ok := c.Get(ctx, "m1")
	assert.False(t, ok)
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "stale", &core.Classification{Reason: "old"}, -time.Minute)
	c.Set(ctx, "fresh", &core.Classification{Reason: "new"}, time.Minute)

	require.NoError(t, c.Cleanup(ctx))

	_, ok := c.Get(ctx, "stale")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "fresh")
	assert.True(t, ok)
}
