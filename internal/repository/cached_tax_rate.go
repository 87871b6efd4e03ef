package repository

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/harvestlane/backoffice/internal/cache"
	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/types"
)

// taxRateTTL bounds how stale a rate lookup can be after an admin edits rates
const taxRateTTL = 5 * time.Minute

// cachedTaxRateRepository memoizes tax rate lookups. Rates change rarely and every
// tax pass reads them for each category on the order.
type cachedTaxRateRepository struct {
	next   taxrate.Repository
	cache  cache.Cache
	logger *logger.Logger
}

func NewCachedTaxRateRepository(next taxrate.Repository, c cache.Cache, logger *logger.Logger) taxrate.Repository {
	return &cachedTaxRateRepository{next: next, cache: c, logger: logger}
}

func (r *cachedTaxRateRepository) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	key := cache.GenerateKey(cache.PrefixTaxRate, types.GetTenantID(ctx), "id", id)
	if v, ok := r.cache.Get(ctx, key); ok {
		if rate, ok := v.(*taxrate.TaxRate); ok {
			return rate, nil
		}
	}

	rate, err := r.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, key, rate, taxRateTTL)
	return rate, nil
}

func (r *cachedTaxRateRepository) List(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	key := r.listKey(ctx, filter)
	span := cache.StartLookupSpan(ctx, "taxrate", key)

	if v, ok := r.cache.Get(ctx, key); ok {
		if rates, ok := v.([]*taxrate.TaxRate); ok {
			cache.FinishLookupSpan(span, true, nil)
			return rates, nil
		}
	}

	rates, err := r.next.List(ctx, filter)
	cache.FinishLookupSpan(span, false, err)
	if err != nil {
		return nil, err
	}

	r.logger.Debugw("caching tax rates", "key", key, "count", len(rates))
	r.cache.Set(ctx, key, rates, taxRateTTL)
	return rates, nil
}

func (r *cachedTaxRateRepository) listKey(ctx context.Context, filter *types.TaxRateFilter) string {
	if filter == nil {
		filter = &types.TaxRateFilter{}
	}
	ids := slices.Clone(filter.TaxRateIDs)
	slices.Sort(ids)
	categories := slices.Clone(filter.TaxCategoryIDs)
	slices.Sort(categories)

	return cache.GenerateKey(cache.PrefixTaxRate,
		types.GetTenantID(ctx),
		"list",
		strings.Join(ids, ","),
		strings.Join(categories, ","),
		filter.ZoneID,
	)
}
