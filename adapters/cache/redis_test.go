package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cluster:p:1", &result{Status: "RUNNING", StatusMessage: "creating"}, time.Minute))
	assert.True(t, mr.Exists(redisKeyPrefix+"cluster:p:1"))

	var got result
	require.NoError(t, store.Get(ctx, "cluster:p:1", &got))
	assert.Equal(t, result{Status: "RUNNING", StatusMessage: "creating"}, got)
}

func TestRedisStore_MissAndExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	var got result
	assert.ErrorIs(t, store.Get(ctx, "cluster:p:1", &got), ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "cluster:p:1", &result{Status: "RUNNING"}, time.Minute))
	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, store.Get(ctx, "cluster:p:1", &got), ErrCacheMiss)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cluster:p:1", &result{Status: "RUNNING"}, time.Minute))
	require.NoError(t, store.Delete(ctx, "cluster:p:1"))
	var got result
	assert.ErrorIs(t, store.Get(ctx, "cluster:p:1", &got), ErrCacheMiss)
}

func TestFetch_WithRedisStore(t *testing.T) {
	store, _ := newRedisStore(t)
	c := New(store, time.Minute)
	key := "cluster:p:1"
	calls := 0
	compute := func(context.Context) (*result, error) {
		calls++
		return &result{Status: "INTEGRATED"}, nil
	}
	for i := 0; i < 3; i++ {
		got, err := Fetch(context.Background(), c, key, compute)
		require.NoError(t, err)
		assert.Equal(t, "INTEGRATED", got.Status)
	}
	assert.Equal(t, 1, calls)
}
