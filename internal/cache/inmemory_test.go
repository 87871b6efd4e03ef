package cache

import (
	"context"
	"testing"
	"time"

	"github.com/harvestlane/backoffice/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()

	c := NewInMemoryCache(cfg)
	key := GenerateKey(PrefixTaxRate, "tenant_1", "list", "txc_food")
	assert.Equal(t, "taxrate:v1:tenant_1:list:txc_food", key)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, []string{"txr_1"}, time.Minute)
	v, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, []string{"txr_1"}, v)

	c.Set(ctx, "short", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	_, ok = c.Get(ctx, "short")
	assert.False(t, ok)
}

func TestDisabledCacheStoresNothing(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false

	c := NewInMemoryCache(cfg)
	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
