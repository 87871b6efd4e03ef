package testutil

import (
	"context"
	"slices"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/types"
)

// InMemoryAdjustmentStore implements adjustment.Repository. Values are copied in and out
// so callers cannot change stored rows without calling Update.
type InMemoryAdjustmentStore struct {
	*InMemoryStore[*adjustment.Adjustment]
}

func NewInMemoryAdjustmentStore() *InMemoryAdjustmentStore {
	return &InMemoryAdjustmentStore{
		InMemoryStore: NewInMemoryStore[*adjustment.Adjustment](),
	}
}

func copyAdjustment(a *adjustment.Adjustment) *adjustment.Adjustment {
	cp := *a
	return &cp
}

func adjustmentFilterFn(ctx context.Context, a *adjustment.Adjustment, filter interface{}) bool {
	f, ok := filter.(*types.AdjustmentFilter)
	if !ok || f == nil {
		return true
	}
	if f.OrderID != "" && a.OrderID != f.OrderID {
		return false
	}
	if f.AdjustableType != "" && a.AdjustableType != f.AdjustableType {
		return false
	}
	if len(f.AdjustableIDs) > 0 && !slices.Contains(f.AdjustableIDs, a.AdjustableID) {
		return false
	}
	if f.OriginatorType != "" && a.OriginatorType != f.OriginatorType {
		return false
	}
	if len(f.OriginatorIDs) > 0 && !slices.Contains(f.OriginatorIDs, a.OriginatorID) {
		return false
	}
	if f.State != "" && a.State != f.State {
		return false
	}
	return true
}

// creation order keeps listings stable across runs
func adjustmentSortFn(i, j *adjustment.Adjustment) bool {
	if i.CreatedAt.Equal(j.CreatedAt) {
		return i.ID < j.ID
	}
	return i.CreatedAt.Before(j.CreatedAt)
}

func (s *InMemoryAdjustmentStore) Create(ctx context.Context, a *adjustment.Adjustment) error {
	return s.InMemoryStore.Create(ctx, a.ID, copyAdjustment(a))
}

func (s *InMemoryAdjustmentStore) Get(ctx context.Context, id string) (*adjustment.Adjustment, error) {
	a, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyAdjustment(a), nil
}

func (s *InMemoryAdjustmentStore) List(ctx context.Context, filter *types.AdjustmentFilter) ([]*adjustment.Adjustment, error) {
	items, err := s.InMemoryStore.List(ctx, filter, adjustmentFilterFn, adjustmentSortFn)
	if err != nil {
		return nil, err
	}
	out := make([]*adjustment.Adjustment, 0, len(items))
	for _, a := range items {
		out = append(out, copyAdjustment(a))
	}
	return out, nil
}

func (s *InMemoryAdjustmentStore) Update(ctx context.Context, a *adjustment.Adjustment) error {
	return s.InMemoryStore.Update(ctx, a.ID, copyAdjustment(a))
}

func (s *InMemoryAdjustmentStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryAdjustmentStore) DeleteMany(ctx context.Context, ids []string) error {
	for _, id := range ids {
		_ = s.InMemoryStore.Delete(ctx, id)
	}
	return nil
}
