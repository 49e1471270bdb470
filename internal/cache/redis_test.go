package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/config"
)

type point struct {
	Label  string
	Income string
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	expected := []point{{Label: "Jan", Income: "100.5"}, {Label: "Feb", Income: "0"}}
	require.NoError(t, cache.Set(ctx, ChartKey("u1", "2024-02"), expected, time.Minute))

	var actual []point
	found, err := cache.Get(ctx, ChartKey("u1", "2024-02"), &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out []point
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	mr.FastForward(2 * time.Minute)

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "key"))

	var out string
	found, err := cache.Get(ctx, "key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateUser(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, ChartKey("u1", "2024-01"), "a", time.Minute))
	require.NoError(t, cache.Set(ctx, ChartKey("u1", "2024-02"), "b", time.Minute))
	require.NoError(t, cache.Set(ctx, ChartKey("u2", "2024-02"), "c", time.Minute))

	require.NoError(t, cache.InvalidateUser(ctx, "u1"))

	assert.False(t, mr.Exists(ChartKey("u1", "2024-01")))
	assert.False(t, mr.Exists(ChartKey("u1", "2024-02")))
	assert.True(t, mr.Exists(ChartKey("u2", "2024-02")))
}

func TestInvalidateUser_NoKeys(t *testing.T) {
	cache, _ := setupTestCache(t)
	require.NoError(t, cache.InvalidateUser(context.Background(), "nobody"))
}

func TestGetInvalidJSON(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Db.Set(ctx, "bad", []byte("not-json"), time.Minute).Err()
	require.NoError(t, err)

	var out point
	found, err := cache.Get(ctx, "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestInitServerInvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	}

	cache, err := InitServer(context.Background(), cfg)
	assert.Nil(t, cache)
	assert.Error(t, err)
}
