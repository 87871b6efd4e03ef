package testutil

import (
	"context"
	"slices"
	"time"

	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
)

// InMemoryEnterpriseFeeStore implements enterprisefee.Repository with soft deletes
type InMemoryEnterpriseFeeStore struct {
	*InMemoryStore[*enterprisefee.EnterpriseFee]
}

func NewInMemoryEnterpriseFeeStore() *InMemoryEnterpriseFeeStore {
	return &InMemoryEnterpriseFeeStore{
		InMemoryStore: NewInMemoryStore[*enterprisefee.EnterpriseFee](),
	}
}

func copyEnterpriseFee(f *enterprisefee.EnterpriseFee) *enterprisefee.EnterpriseFee {
	cp := *f
	return &cp
}

func enterpriseFeeFilterFn(ctx context.Context, f *enterprisefee.EnterpriseFee, filter interface{}) bool {
	if f.TenantID != types.GetTenantID(ctx) {
		return false
	}
	flt, ok := filter.(*types.EnterpriseFeeFilter)
	if !ok || flt == nil {
		return f.Status != types.StatusDeleted
	}
	if flt.Status != "" {
		if f.Status != flt.Status {
			return false
		}
	} else if f.Status == types.StatusDeleted {
		return false
	}
	if flt.EnterpriseID != "" && f.EnterpriseID != flt.EnterpriseID {
		return false
	}
	if len(flt.FeeIDs) > 0 && !slices.Contains(flt.FeeIDs, f.ID) {
		return false
	}
	return true
}

func (s *InMemoryEnterpriseFeeStore) Create(ctx context.Context, f *enterprisefee.EnterpriseFee) error {
	return s.InMemoryStore.Create(ctx, f.ID, copyEnterpriseFee(f))
}

func (s *InMemoryEnterpriseFeeStore) Get(ctx context.Context, id string) (*enterprisefee.EnterpriseFee, error) {
	f, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || f.TenantID != types.GetTenantID(ctx) || f.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("enterprise fee %s not found", id).
			WithHint("Enterprise fee not found").
			WithReportableDetails(map[string]any{"enterprise_fee_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyEnterpriseFee(f), nil
}

func (s *InMemoryEnterpriseFeeStore) List(ctx context.Context, filter *types.EnterpriseFeeFilter) ([]*enterprisefee.EnterpriseFee, error) {
	items, err := s.InMemoryStore.List(ctx, filter, enterpriseFeeFilterFn, func(i, j *enterprisefee.EnterpriseFee) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}
	out := make([]*enterprisefee.EnterpriseFee, 0, len(items))
	for _, f := range items {
		out = append(out, copyEnterpriseFee(f))
	}
	return out, nil
}

func (s *InMemoryEnterpriseFeeStore) Update(ctx context.Context, f *enterprisefee.EnterpriseFee) error {
	f.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, f.ID, copyEnterpriseFee(f))
}

func (s *InMemoryEnterpriseFeeStore) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	f.Status = types.StatusDeleted
	f.UpdatedAt = time.Now().UTC()
	f.UpdatedBy = types.GetUserID(ctx)
	return s.InMemoryStore.Update(ctx, id, f)
}
