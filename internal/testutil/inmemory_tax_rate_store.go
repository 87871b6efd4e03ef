package testutil

import (
	"context"
	"slices"

	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
)

type InMemoryTaxRateStore struct {
	*InMemoryStore[*taxrate.TaxRate]
}

func NewInMemoryTaxRateStore() *InMemoryTaxRateStore {
	return &InMemoryTaxRateStore{
		InMemoryStore: NewInMemoryStore[*taxrate.TaxRate](),
	}
}

// Put seeds a tax rate
func (s *InMemoryTaxRateStore) Put(ctx context.Context, r *taxrate.TaxRate) error {
	return s.InMemoryStore.Create(ctx, r.ID, r)
}

func taxRateFilterFn(ctx context.Context, r *taxrate.TaxRate, filter interface{}) bool {
	if r.Status != types.StatusPublished {
		return false
	}
	f, ok := filter.(*types.TaxRateFilter)
	if !ok || f == nil {
		return true
	}
	if len(f.TaxRateIDs) > 0 && !slices.Contains(f.TaxRateIDs, r.ID) {
		return false
	}
	if len(f.TaxCategoryIDs) > 0 && !slices.Contains(f.TaxCategoryIDs, r.TaxCategoryID) {
		return false
	}
	if f.ZoneID != "" && r.ZoneID != f.ZoneID {
		return false
	}
	return true
}

func (s *InMemoryTaxRateStore) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	r, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("tax rate %s not found", id).
			WithHint("Tax rate not found").
			Mark(ierr.ErrNotFound)
	}
	return r, nil
}

func (s *InMemoryTaxRateStore) List(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	return s.InMemoryStore.List(ctx, filter, taxRateFilterFn, func(i, j *taxrate.TaxRate) bool {
		return i.ID < j.ID
	})
}
