// Package cache is the pull-based "compute if stale" cache that throttles
// reconciliation. Results are kept per identity key in a pluggable Store.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/kompox/kubelink/internal/logging"
	"github.com/kompox/kubelink/internal/metrics"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("cache: key is missing")

// Store is a TTL-aware key/value backend. Get returns ErrCacheMiss for
// missing or expired keys.
type Store interface {
	Get(ctx context.Context, key string, obj any) error
	Set(ctx context.Context, key string, obj any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cache computes values on demand and keeps them for TTL, the staleness window.
// Concurrent fetches of the same key share one computation.
type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

// New returns a Cache over store.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Invalidate drops the cached value of key.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// Fetch returns the cached value of key, calling compute when it is missing or
// stale. Errors from compute are returned and not cached. A failing store is
// logged and bypassed.
func Fetch[T any](ctx context.Context, c *Cache, k string, compute func(ctx context.Context) (*T, error)) (*T, error) {
	logger := logging.FromContext(ctx)

	var cached T
	err := c.store.Get(ctx, k, &cached)
	switch {
	case err == nil:
		metrics.StatusCacheRequests.WithLabelValues(metrics.CacheHit).Inc()
		return &cached, nil
	case errors.Is(err, ErrCacheMiss):
		metrics.StatusCacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.StatusCacheRequests.WithLabelValues(metrics.CacheError).Inc()
		logger.Warn(ctx, "cache get failed", "key", k, "err", err)
	}

	// The shared computation outlives any single caller; each caller stops
	// waiting when its own ctx is done.
	ch := c.group.DoChan(k, func() (any, error) {
		cctx := context.WithoutCancel(ctx)
		out, err := compute(cctx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(cctx, k, out, c.ttl); err != nil {
			logger.Warn(cctx, "cache set failed", "key", k, "err", err)
		}
		return out, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*T), nil
	}
}

// Typed binds a Cache to one value type so it can satisfy non-generic ports.
type Typed[T any] struct{ c *Cache }

// NewTyped returns a Typed view of c.
func NewTyped[T any](c *Cache) *Typed[T] { return &Typed[T]{c: c} }

// Fetch is Fetch[T] on the underlying Cache.
func (t *Typed[T]) Fetch(ctx context.Context, key string, compute func(ctx context.Context) (*T, error)) (*T, error) {
	return Fetch(ctx, t.c, key, compute)
}

// Invalidate drops the cached value of key.
func (t *Typed[T]) Invalidate(ctx context.Context, key string) error {
	return t.c.Invalidate(ctx, key)
}
