package cache

import (
	"context"
	"errors"
	"time"

	rediscache "github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "kubelink:"

// RedisStore keeps values in Redis, msgpack encoded by go-redis/cache.
type RedisStore struct {
	cache *rediscache.Cache
}

// NewRedisStore returns a Store backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		cache: rediscache.New(&rediscache.Options{Redis: client}),
	}
}

// compile-time validation of adherence of the Store contract
var _ Store = &RedisStore{}

func (r *RedisStore) Get(ctx context.Context, key string, obj any) error {
	err := r.cache.Get(ctx, redisKeyPrefix+key, obj)
	if errors.Is(err, rediscache.ErrCacheMiss) {
		return ErrCacheMiss
	}
	return err
}

func (r *RedisStore) Set(ctx context.Context, key string, obj any, ttl time.Duration) error {
	return r.cache.Set(&rediscache.Item{
		Ctx:   ctx,
		Key:   redisKeyPrefix + key,
		Value: obj,
		TTL:   ttl,
	})
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, redisKeyPrefix+key)
}
