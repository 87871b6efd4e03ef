package cache

import (
	"context"
	"time"

	"github.com/harvestlane/backoffice/internal/config"
	goCache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = 30 * time.Minute
	DefaultCleanupInterval = time.Hour
)

// InMemoryCache is a process-local Cache backed by go-cache
type InMemoryCache struct {
	store   *goCache.Cache
	enabled bool
}

// NewInMemoryCache returns a cache that stores nothing when caching is disabled in config
func NewInMemoryCache(cfg *config.Configuration) Cache {
	return &InMemoryCache{
		store:   goCache.New(DefaultExpiration, DefaultCleanupInterval),
		enabled: cfg.Cache.Enabled,
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}
	return c.store.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) {
	if !c.enabled {
		return
	}
	if ttl <= 0 {
		ttl = goCache.DefaultExpiration
	}
	c.store.Set(key, value, ttl)
}
