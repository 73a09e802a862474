package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// InMemoryStore keeps gob encoded values in process memory.
type InMemoryStore struct {
	memCache *gocache.Cache
}

// NewInMemoryStore returns a Store whose expired entries are purged every minute.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{memCache: gocache.New(gocache.NoExpiration, time.Minute)}
}

var _ Store = &InMemoryStore{}

func (i *InMemoryStore) Get(_ context.Context, key string, obj any) error {
	v, found := i.memCache.Get(key)
	if !found {
		return ErrCacheMiss
	}
	buf := bytes.NewBuffer(v.([]byte))
	return gob.NewDecoder(buf).Decode(obj)
}

func (i *InMemoryStore) Set(_ context.Context, key string, obj any, ttl time.Duration) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(obj); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	i.memCache.Set(key, buf.Bytes(), ttl)
	return nil
}

func (i *InMemoryStore) Delete(_ context.Context, key string) error {
	i.memCache.Delete(key)
	return nil
}
