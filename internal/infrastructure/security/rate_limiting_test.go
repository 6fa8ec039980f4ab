package security

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimitStore(t *testing.T) {
	store := NewMemoryRateLimitStore()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := store.Allow(ctx, "user:1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should pass", i)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := store.Allow(ctx, "user:1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.InDelta(t, (20 * time.Second).Seconds(), res.RetryAfter.Seconds(), 0.01)

	// other keys have their own bucket
	res, err = store.Allow(ctx, "user:2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// one token refills after window/limit
	store.now = func() time.Time { return base.Add(20 * time.Second) }
	res, err = store.Allow(ctx, "user:1", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestMemoryRateLimitStore_DisabledLimit(t *testing.T) {
	res, err := NewMemoryRateLimitStore().Allow(context.Background(), "k", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisRateLimitStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := store.Allow(ctx, "ip:10.0.0.1", 2, time.Hour)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1-i, res.Remaining)
	}

	res, err := store.Allow(ctx, "ip:10.0.0.1", 2, time.Hour)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.True(t, res.RetryAfter > 0 && res.RetryAfter <= time.Hour)

	assert.True(t, mr.Exists("rate_limit:ip:10.0.0.1"))
}

func TestRedisRateLimitStore_ConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	_, err := NewRedisRateLimitStore(client).Allow(context.Background(), "k", 1, time.Minute)
	assert.Error(t, err)
}
