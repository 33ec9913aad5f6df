package redis_a_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/resell-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/test/helpers"
)

func newCache(t *testing.T) (*redis_a.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	return redis_a.NewCache(client, 5*time.Minute, helpers.TestLogger()), mr
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)

	tests := []struct {
		name  string
		key   string
		value domain.StockLevel
	}{
		{name: "stores_level", key: "stock:1", value: domain.StockLevel{VariantID: 1, Quantity: 4}},
		{name: "stores_zero_level", key: "stock:2", value: domain.StockLevel{VariantID: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, cache.Set(ctx, tt.key, tt.value))

			var got domain.StockLevel
			require.NoError(t, cache.Get(ctx, tt.key, &got))
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "stock:9", 3, 100*time.Millisecond))

	var qty int
	require.NoError(t, cache.Get(ctx, "stock:9", &qty))
	assert.Equal(t, 3, qty)

	mr.FastForward(200 * time.Millisecond)

	err := cache.Get(ctx, "stock:9", &qty)
	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache, _ := newCache(t)

	keys := []string{"stock:1", "stock:2", "stock:3"}
	for _, key := range keys {
		require.NoError(t, cache.Set(ctx, key, 1))
	}

	require.NoError(t, cache.Delete(ctx, keys...))
	require.NoError(t, cache.Delete(ctx))

	for _, key := range keys {
		var qty int
		assert.ErrorIs(t, cache.Get(ctx, key, &qty), redis_a.ErrCacheMiss)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches_once_then_serves_cache", func(t *testing.T) {
		cache, _ := newCache(t)
		fetchCount := 0
		fetch := func() (interface{}, error) {
			fetchCount++
			return 12, nil
		}

		var first, second int
		require.NoError(t, cache.GetOrSet(ctx, "stock:5", &first, fetch, time.Minute))
		require.NoError(t, cache.GetOrSet(ctx, "stock:5", &second, fetch, time.Minute))

		assert.Equal(t, 12, first)
		assert.Equal(t, 12, second)
		assert.Equal(t, 1, fetchCount)
	})

	t.Run("fetch_error_is_returned_and_not_cached", func(t *testing.T) {
		cache, mr := newCache(t)
		var qty int
		err := cache.GetOrSet(ctx, "stock:5", &qty, func() (interface{}, error) {
			return nil, domain.ErrStoreUnavailable
		}, time.Minute)

		assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
		assert.False(t, mr.Exists("stock:5"))
	})

	t.Run("redis_down_falls_back_to_fetch", func(t *testing.T) {
		cache, mr := newCache(t)
		mr.SetError("ERR backend down")

		var qty int
		err := cache.GetOrSet(ctx, "stock:5", &qty, func() (interface{}, error) {
			return 8, nil
		}, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, 8, qty)
	})
}

func TestCache_Ping(t *testing.T) {
	ctx := context.Background()
	cache, mr := newCache(t)

	require.NoError(t, cache.Ping(ctx))

	mr.SetError("ERR backend down")
	assert.Error(t, cache.Ping(ctx))
}
