package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	current := time.Unix(1700000000, 0)
	l := NewLimiter(time.Minute, 2)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow(ctx, "a"))
	assert.True(t, l.Allow(ctx, "a"))
	assert.False(t, l.Allow(ctx, "a"), "third hit in window should be denied")
	assert.True(t, l.Allow(ctx, "b"), "keys are independent")

	current = current.Add(time.Minute + time.Second)
	assert.True(t, l.Allow(ctx, "a"), "hits expire with the window")
}

func newRedisLimiter(t *testing.T, maxHits int) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLimiter(client, "generate", time.Minute, maxHits), mini
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()
	l, mini := newRedisLimiter(t, 2)
	current := time.Unix(1700000000, 0)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow(ctx, "a"))
	assert.True(t, l.Allow(ctx, "a"))
	assert.False(t, l.Allow(ctx, "a"))
	assert.True(t, l.Allow(ctx, "b"))

	keys := mini.Keys()
	assert.Len(t, keys, 2)
	for _, k := range keys {
		assert.Greater(t, mini.TTL(k), time.Duration(0))
	}

	current = current.Add(time.Minute)
	assert.True(t, l.Allow(ctx, "a"), "next window starts fresh")
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	l, mini := newRedisLimiter(t, 1)
	mini.Close()

	assert.True(t, l.Allow(context.Background(), "a"))
	assert.True(t, l.Allow(context.Background(), "a"))
}
