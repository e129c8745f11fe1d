package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maeva109/FTHEARTIZONE/internal/domain"
)

func setupTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client)
}

func TestRedisCache_SetGet(t *testing.T) {
	cache := setupTestRedis(t)
	ctx := context.Background()

	items := []domain.CartItem{
		{ID: 1, Product: domain.Product{ID: 42, Name: "Panier tressé", Price: 1500}, Quantity: 3},
	}

	require.NoError(t, cache.Set(ctx, "sess-1", items))

	got, err := cache.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestRedisCache_GetMiss(t *testing.T) {
	cache := setupTestRedis(t)

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	cache := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sess-1", []domain.CartItem{{ID: 1, Quantity: 1}}))
	require.NoError(t, cache.Delete(ctx, "sess-1"))

	_, err := cache.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_DeleteMissingKeyIsNoop(t *testing.T) {
	cache := setupTestRedis(t)

	assert.NoError(t, cache.Delete(context.Background(), "absent"))
}
