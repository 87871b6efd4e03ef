package testutil

import (
	"context"
	"slices"
	"time"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/order"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
)

// InMemoryOrderStore implements order.Repository. It keeps order headers with their line
// items and shipments, and loads adjustments from the adjustment store on every Get, the
// way the postgres repository assembles the aggregate.
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]
	adjustments *InMemoryAdjustmentStore
}

func NewInMemoryOrderStore(adjustments *InMemoryAdjustmentStore) *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
		adjustments:   adjustments,
	}
}

// Put seeds an order. Adjustments already attached to it are written to the adjustment store.
func (s *InMemoryOrderStore) Put(ctx context.Context, o *order.Order) error {
	if err := s.InMemoryStore.Create(ctx, o.ID, copyOrderHeader(o)); err != nil {
		return err
	}
	for _, a := range o.AllAdjustments() {
		if err := s.adjustments.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	stored, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || stored.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewErrorf("order %s not found", id).
			WithHint("Order not found").
			WithReportableDetails(map[string]any{"order_id": id}).
			Mark(ierr.ErrNotFound)
	}

	o := copyOrderHeader(stored)
	adjustments, err := s.adjustments.List(ctx, &types.AdjustmentFilter{OrderID: o.ID})
	if err != nil {
		return nil, err
	}
	for _, a := range adjustments {
		o.AttachAdjustment(a)
	}
	return o, nil
}

func (s *InMemoryOrderStore) GetByLineItemID(ctx context.Context, lineItemID string) (*order.Order, error) {
	matches, err := s.InMemoryStore.List(ctx, lineItemID, func(_ context.Context, o *order.Order, _ interface{}) bool {
		_, ok := o.LineItem(lineItemID)
		return ok
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ierr.NewErrorf("line item %s not found", lineItemID).
			WithHint("Line item not found").
			Mark(ierr.ErrNotFound)
	}
	return s.Get(ctx, matches[0].ID)
}

func orderFilterFn(ctx context.Context, o *order.Order, filter interface{}) bool {
	if o.TenantID != types.GetTenantID(ctx) {
		return false
	}
	f, ok := filter.(*types.OrderFilter)
	if !ok || f == nil {
		return true
	}
	if len(f.OrderIDs) > 0 && !slices.Contains(f.OrderIDs, o.ID) {
		return false
	}
	if len(f.OrderCycleIDs) > 0 && !slices.Contains(f.OrderCycleIDs, lo.FromPtr(o.OrderCycleID)) {
		return false
	}
	if f.DistributorID != "" && lo.FromPtr(o.DistributorID) != f.DistributorID {
		return false
	}
	if len(f.States) > 0 && !slices.Contains(f.States, o.State) {
		return false
	}
	if f.ExcludeCompleted && o.State.IsCompleted() {
		return false
	}
	return true
}

func (s *InMemoryOrderStore) List(ctx context.Context, filter *types.OrderFilter) ([]*order.Order, error) {
	items, err := s.InMemoryStore.List(ctx, filter, orderFilterFn, func(i, j *order.Order) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}
	if filter != nil && filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return lo.Map(items, func(o *order.Order, _ int) *order.Order {
		return copyOrderHeader(o)
	}), nil
}

func (s *InMemoryOrderStore) UpdateTotals(ctx context.Context, o *order.Order) error {
	stored, err := s.InMemoryStore.Get(ctx, o.ID)
	if err != nil {
		return err
	}

	updated := copyOrderHeader(stored)
	updated.ItemTotal = o.ItemTotal
	updated.ShipmentTotal = o.ShipmentTotal
	updated.AdjustmentTotal = o.AdjustmentTotal
	updated.AdditionalTaxTotal = o.AdditionalTaxTotal
	updated.IncludedTaxTotal = o.IncludedTaxTotal
	updated.Total = o.Total
	updated.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, o.ID, updated)
}

// copyOrderHeader copies the order with fresh line item and shipment values and no adjustments.
// Variants and products are shared, the engine never writes to them.
func copyOrderHeader(o *order.Order) *order.Order {
	cp := *o
	cp.Adjustments = []*adjustment.Adjustment{}
	cp.LineItems = lo.Map(o.LineItems, func(li *order.LineItem, _ int) *order.LineItem {
		c := *li
		c.Adjustments = []*adjustment.Adjustment{}
		return &c
	})
	cp.Shipments = lo.Map(o.Shipments, func(sh *order.Shipment, _ int) *order.Shipment {
		c := *sh
		c.Adjustments = []*adjustment.Adjustment{}
		return &c
	})
	return &cp
}
