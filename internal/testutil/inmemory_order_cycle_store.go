package testutil

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/ordercycle"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
)

// InMemoryOrderCycleStore implements ordercycle.Repository. Fees known to the fee store are
// reloaded from it on Get, so edits and deletes show up the way a join would show them.
type InMemoryOrderCycleStore struct {
	*InMemoryStore[*ordercycle.OrderCycle]
	fees *InMemoryEnterpriseFeeStore
}

func NewInMemoryOrderCycleStore(fees *InMemoryEnterpriseFeeStore) *InMemoryOrderCycleStore {
	return &InMemoryOrderCycleStore{
		InMemoryStore: NewInMemoryStore[*ordercycle.OrderCycle](),
		fees:          fees,
	}
}

// Put seeds an order cycle
func (s *InMemoryOrderCycleStore) Put(ctx context.Context, oc *ordercycle.OrderCycle) error {
	return s.InMemoryStore.Create(ctx, oc.ID, oc)
}

func (s *InMemoryOrderCycleStore) Get(ctx context.Context, id string) (*ordercycle.OrderCycle, error) {
	stored, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("order cycle %s not found", id).
			WithHint("Order cycle not found").
			WithReportableDetails(map[string]any{"order_cycle_id": id}).
			Mark(ierr.ErrNotFound)
	}

	cp := *stored
	cp.CoordinatorFees = s.refresh(ctx, stored.CoordinatorFees)
	cp.Exchanges = lo.Map(stored.Exchanges, func(e *ordercycle.Exchange, _ int) *ordercycle.Exchange {
		ex := *e
		ex.EnterpriseFees = s.refresh(ctx, e.EnterpriseFees)
		return &ex
	})
	return &cp, nil
}

func (s *InMemoryOrderCycleStore) ListIDsByEnterpriseFee(ctx context.Context, feeID string) ([]string, error) {
	cycles, err := s.InMemoryStore.List(ctx, feeID, func(_ context.Context, oc *ordercycle.OrderCycle, _ interface{}) bool {
		return oc.HasFee(feeID)
	}, func(i, j *ordercycle.OrderCycle) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(cycles, func(oc *ordercycle.OrderCycle, _ int) string {
		return oc.ID
	}), nil
}

// refresh swaps fees for their stored version and drops the ones no longer published
func (s *InMemoryOrderCycleStore) refresh(ctx context.Context, fees []*enterprisefee.EnterpriseFee) []*enterprisefee.EnterpriseFee {
	out := make([]*enterprisefee.EnterpriseFee, 0, len(fees))
	for _, f := range fees {
		if s.fees == nil {
			out = append(out, f)
			continue
		}
		stored, err := s.fees.InMemoryStore.Get(ctx, f.ID)
		if err != nil {
			out = append(out, f)
			continue
		}
		if stored.Status != types.StatusPublished {
			continue
		}
		out = append(out, copyEnterpriseFee(stored))
	}
	return out
}
