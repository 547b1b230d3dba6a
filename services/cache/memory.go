package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	// purge expired items every 10 minutes
	return &MemoryCache{c: gocache.New(DefaultTTL, 10*time.Minute)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	val, found := m.c.Get(key)
	if !found {
		return nil, false
	}
	b, ok := val.([]byte)
	return b, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		m.c.Delete(key)
	}
}
