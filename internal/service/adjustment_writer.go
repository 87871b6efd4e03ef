package service

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/samber/lo"
)

// AdjustmentChanges counts what a pass did to an order's adjustments
type AdjustmentChanges struct {
	Created int
	Updated int
	Removed int
}

func (c *AdjustmentChanges) Add(other AdjustmentChanges) {
	c.Created += other.Created
	c.Updated += other.Updated
	c.Removed += other.Removed
}

// Empty reports whether nothing was written
func (c AdjustmentChanges) Empty() bool {
	return c.Created == 0 && c.Updated == 0 && c.Removed == 0
}

// adjustmentWriter persists adjustment changes and mirrors them on the loaded order,
// so later steps of a pass see the state they would read back from storage.
type adjustmentWriter struct {
	repo    adjustment.Repository
	order   *order.Order
	changes AdjustmentChanges
}

func newAdjustmentWriter(repo adjustment.Repository, o *order.Order) *adjustmentWriter {
	return &adjustmentWriter{repo: repo, order: o}
}

func (w *adjustmentWriter) create(ctx context.Context, adj *adjustment.Adjustment) error {
	if err := w.repo.Create(ctx, adj); err != nil {
		return err
	}
	w.order.AttachAdjustment(adj)
	w.changes.Created++
	return nil
}

func (w *adjustmentWriter) update(ctx context.Context, adj *adjustment.Adjustment) error {
	if err := w.repo.Update(ctx, adj); err != nil {
		return err
	}
	w.changes.Updated++
	return nil
}

func (w *adjustmentWriter) remove(ctx context.Context, adjustments []*adjustment.Adjustment) error {
	if len(adjustments) == 0 {
		return nil
	}

	ids := lo.Map(adjustments, func(a *adjustment.Adjustment, _ int) string { return a.ID })
	if err := w.repo.DeleteMany(ctx, ids); err != nil {
		return err
	}
	for _, a := range adjustments {
		w.order.DetachAdjustment(a)
	}
	w.changes.Removed += len(adjustments)
	return nil
}
