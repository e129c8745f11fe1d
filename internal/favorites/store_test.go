package favorites

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client)
}

// both implementations share behavior, so each test runs against both
func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"redis":  setupRedisStore(t),
		"memory": NewMemoryStore(),
	}
}

func TestToggle_FlipsAndReports(t *testing.T) {
	for name, sut := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			liked, err := sut.Toggle(ctx, "sess-1", KindProduct, 42)
			require.NoError(t, err)
			assert.True(t, liked)

			liked, err = sut.IsFavorite(ctx, "sess-1", KindProduct, 42)
			require.NoError(t, err)
			assert.True(t, liked)

			liked, err = sut.Toggle(ctx, "sess-1", KindProduct, 42)
			require.NoError(t, err)
			assert.False(t, liked)

			liked, err = sut.IsFavorite(ctx, "sess-1", KindProduct, 42)
			require.NoError(t, err)
			assert.False(t, liked)
		})
	}
}

func TestList_SortedPerKind(t *testing.T) {
	for name, sut := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, id := range []int64{7, 3, 42} {
				_, err := sut.Toggle(ctx, "sess-1", KindProduct, id)
				require.NoError(t, err)
			}
			_, err := sut.Toggle(ctx, "sess-1", KindArtisan, 5)
			require.NoError(t, err)

			products, err := sut.List(ctx, "sess-1", KindProduct)
			require.NoError(t, err)
			assert.Equal(t, []int64{3, 7, 42}, products)

			artisans, err := sut.List(ctx, "sess-1", KindArtisan)
			require.NoError(t, err)
			assert.Equal(t, []int64{5}, artisans)
		})
	}
}

func TestList_IsolatedPerSession(t *testing.T) {
	for name, sut := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := sut.Toggle(ctx, "sess-1", KindProduct, 42)
			require.NoError(t, err)

			other, err := sut.List(ctx, "sess-2", KindProduct)
			require.NoError(t, err)
			assert.Empty(t, other)
		})
	}
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, KindProduct.Valid())
	assert.True(t, KindArtisan.Valid())
	assert.False(t, Kind("shop").Valid())
	assert.False(t, Kind("").Valid())
}
