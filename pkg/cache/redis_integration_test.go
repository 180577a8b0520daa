//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/pkg/cache"
	"github.com/dmitrymomot/deliverkit/pkg/redis"
)

func newRedisCache[V any](t *testing.T, prefix string) *cache.Redis[V] {
	t.Helper()

	cfg := redis.Config{URL: os.Getenv("REDIS_URL")}
	if cfg.URL == "" {
		cfg.URL = "redis://localhost:6379/0"
	}
	client, err := redis.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedis[V](client, nil, prefix+"-"+t.Name(), time.Minute)
}

type payload struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestRedis_GetSetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newRedisCache[payload](t, "cache-test")

	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Set(ctx, "k", payload{ID: "01J", Count: 2}, 0))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, payload{ID: "01J", Count: 2}, v)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestRedis_Once(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := newRedisCache[payload](t, "cache-once")

	calls := 0
	fn := func(context.Context) (payload, error) {
		calls++
		return payload{ID: "x"}, nil
	}
	_, hit, err := cache.Once(ctx, c, "k", time.Minute, fn)
	require.NoError(t, err)
	require.False(t, hit)

	v, hit, err := cache.Once(ctx, c, "k", time.Minute, fn)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "x", v.ID)
	require.Equal(t, 1, calls)
}
