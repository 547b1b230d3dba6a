// Package cache holds the boundary read-cache used by the API layer for
// derived aggregates. The core services never cache; entries carry a bounded
// TTL and are invalidated on the writes that affect them.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/utils"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

const DefaultTTL = 30 * time.Second

// FromConfig selects the backend named by CACHE_BACKEND, defaulting to the
// in-process store.
func FromConfig(c *utils.Config) (Cache, error) {
	switch c.CacheBackend {
	case "", "memory":
		return NewMemoryCache(), nil
	case "redis":
		return NewRedisCache(&RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend: %v", c.CacheBackend)
	}
}

// TTLFromConfig resolves the configured entry lifetime.
func TTLFromConfig(c *utils.Config) time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return DefaultTTL
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
