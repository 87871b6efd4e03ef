package service

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/publisher"
	"github.com/harvestlane/backoffice/internal/sentry"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
)

// FeeSynchronizer keeps an order's enterprise fee adjustments in line with the fees
// configured on its order cycle. Every operation runs in one transaction under the
// order lock, then taxes and totals are refreshed before the lock is released.
type FeeSynchronizer interface {
	// RecreateAllFees fully resynchronizes the order. Running it twice without any change
	// in between leaves the same adjustments with the same ids and amounts.
	RecreateAllFees(ctx context.Context, orderID string) (*FeeSyncResult, error)
	// UpdateLineItemFees recomputes the existing fee adjustments of one line item in place
	UpdateLineItemFees(ctx context.Context, lineItemID string) (*FeeSyncResult, error)
	// UpdateOrderFees recomputes every existing fee adjustment of the order in place
	UpdateOrderFees(ctx context.Context, orderID string) (*FeeSyncResult, error)
	// RemoveOrderCycleFees drops every open fee adjustment, for orders leaving their order cycle
	RemoveOrderCycleFees(ctx context.Context, orderID string) (*FeeSyncResult, error)
}

// FeeSyncResult is the committed state of the order after a pass
type FeeSyncResult struct {
	Order   *order.Order
	Changes AdjustmentChanges
}

type feeSynchronizer struct {
	ServiceParams
	tax    TaxService
	totals OrderTotalsService
}

func NewFeeSynchronizer(params ServiceParams) FeeSynchronizer {
	return &feeSynchronizer{
		ServiceParams: params,
		tax:           NewTaxService(params),
		totals:        NewOrderTotalsService(params),
	}
}

// feePass is the explicit per-pass state: the loaded order, the fee resolver with its
// per-variant memo, the tax rates, and the writer recording what changed.
type feePass struct {
	order    *order.Order
	resolver *FeeResolver
	rates    []*taxrate.TaxRate
	writer   *adjustmentWriter
}

func (s *feeSynchronizer) RecreateAllFees(ctx context.Context, orderID string) (*FeeSyncResult, error) {
	return s.run(ctx, "recreate_all_fees", orderID, types.EventOrderFeesUpdated, s.recreateAll)
}

func (s *feeSynchronizer) UpdateOrderFees(ctx context.Context, orderID string) (*FeeSyncResult, error) {
	return s.run(ctx, "update_order_fees", orderID, types.EventOrderFeesUpdated, func(ctx context.Context, p *feePass) error {
		for _, li := range p.order.LineItems {
			if err := s.updateLineItem(ctx, p, li); err != nil {
				return err
			}
		}
		return s.updateOrderLevel(ctx, p)
	})
}

func (s *feeSynchronizer) UpdateLineItemFees(ctx context.Context, lineItemID string) (*FeeSyncResult, error) {
	if lineItemID == "" {
		return nil, ierr.NewError("line_item_id is required").
			WithHint("Line item ID is required").
			Mark(ierr.ErrValidation)
	}

	owner, err := s.OrderRepo.GetByLineItemID(ctx, lineItemID)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, "update_line_item_fees", owner.ID, types.EventOrderFeesUpdated, func(ctx context.Context, p *feePass) error {
		li, ok := p.order.LineItem(lineItemID)
		if !ok {
			// removed between the lookup and the lock
			return ierr.NewError("line item not found").
				WithHintf("Line item %s was not found", lineItemID).
				Mark(ierr.ErrNotFound)
		}
		return s.updateLineItem(ctx, p, li)
	})
}

func (s *feeSynchronizer) RemoveOrderCycleFees(ctx context.Context, orderID string) (*FeeSyncResult, error) {
	return s.run(ctx, "remove_order_cycle_fees", orderID, types.EventOrderFeesRemoved, func(ctx context.Context, p *feePass) error {
		open := lo.Filter(p.order.AllAdjustments(), func(a *adjustment.Adjustment, _ int) bool {
			return a.IsEnterpriseFee() && a.IsOpen()
		})
		return p.writer.remove(ctx, open)
	})
}

// run wraps a pass in the transaction and the order lock. The order is read only once the
// lock is held. Taxes and totals are refreshed inside the same scope, and the event is
// published after the lock is released.
func (s *feeSynchronizer) run(
	ctx context.Context,
	operation string,
	orderID string,
	eventName types.EventName,
	fn func(ctx context.Context, p *feePass) error,
) (*FeeSyncResult, error) {
	if orderID == "" {
		return nil, ierr.NewError("order_id is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation)
	}

	span, ctx := s.Sentry.StartFeeSpan(ctx, operation, map[string]interface{}{"order_id": orderID})
	defer sentry.FinishSpan(span)

	var pass *feePass
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.Locker.WithOrderLock(ctx, orderID, func(ctx context.Context) error {
			var err error
			pass, err = s.newPass(ctx, orderID)
			if err != nil {
				return err
			}
			if err := fn(ctx, pass); err != nil {
				return err
			}
			return s.settle(ctx, pass)
		})
	})
	if err != nil {
		s.Logger.Errorw("fee synchronization failed",
			"operation", operation,
			"order_id", orderID,
			"error", err,
		)
		if !ierr.IsConfiguration(err) && !ierr.IsValidation(err) && !ierr.IsNotFound(err) && !ierr.IsLocked(err) {
			s.Sentry.CaptureException(err)
		}
		return nil, err
	}

	result := &FeeSyncResult{Order: pass.order, Changes: pass.writer.changes}
	s.Logger.Infow("synchronized order fees",
		"operation", operation,
		"order_id", orderID,
		"created", result.Changes.Created,
		"updated", result.Changes.Updated,
		"removed", result.Changes.Removed,
		"total", result.Order.Total,
	)

	s.publish(ctx, eventName, result)
	return result, nil
}

func (s *feeSynchronizer) newPass(ctx context.Context, orderID string) (*feePass, error) {
	o, err := s.OrderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	pass := &feePass{
		order:    o,
		resolver: NewFeeResolver("", nil),
		writer:   newAdjustmentWriter(s.AdjustmentRepo, o),
	}

	if o.HasDistribution() {
		oc, err := s.OrderCycleRepo.Get(ctx, lo.FromPtr(o.OrderCycleID))
		if err != nil {
			return nil, err
		}
		pass.resolver = NewFeeResolver(lo.FromPtr(o.DistributorID), oc)
	}

	if o.State.PastPayment() {
		if pass.rates, err = s.tax.RatesFor(ctx, o); err != nil {
			return nil, err
		}
	}
	return pass, nil
}

// settle runs the tax pass once the order is past payment, then persists totals.
// Before payment fees are shown without a firm tax figure.
func (s *feeSynchronizer) settle(ctx context.Context, p *feePass) error {
	if p.order.State.PastPayment() {
		changes, err := s.tax.ApplyTaxes(ctx, p.order, p.rates)
		if err != nil {
			return err
		}
		p.writer.changes.Add(changes)
	}
	return s.totals.UpdateTotals(ctx, p.order)
}

func (s *feeSynchronizer) recreateAll(ctx context.Context, p *feePass) error {
	for _, li := range p.order.LineItems {
		if err := s.syncLineItem(ctx, p, li); err != nil {
			return err
		}
	}
	return s.syncOrderLevel(ctx, p)
}

// syncLineItem creates or updates an adjustment for every resolved (fee, role) pair and
// removes the open ones whose pair no longer resolves. Adjustments under a role the engine
// does not know are kept.
func (s *feeSynchronizer) syncLineItem(ctx context.Context, p *feePass, li *order.LineItem) error {
	distributed := p.resolver.DistributesVariant(li.VariantID)

	var resolved []FeeApplicator
	if distributed {
		resolved = p.resolver.PerItemFeesFor(li.VariantID)
	}

	keep := make(map[applicatorKey]struct{}, len(resolved))
	for _, applicator := range resolved {
		keep[applicator.key()] = struct{}{}

		if existing, ok := li.FeeAdjustment(applicator.Fee.ID, applicator.Role); ok {
			changed, err := applicator.UpdateAdjustment(existing, li)
			if err != nil {
				return err
			}
			if changed {
				if err := p.writer.update(ctx, existing); err != nil {
					return err
				}
			}
			continue
		}

		adj, err := applicator.CreateLineItemAdjustment(ctx, li, distributed)
		if err != nil {
			return err
		}
		if adj == nil {
			continue
		}
		if err := p.writer.create(ctx, adj); err != nil {
			return err
		}
	}

	return p.writer.remove(ctx, s.stale(p.order, li.EnterpriseFeeAdjustments(), keep))
}

// syncOrderLevel rebuilds the per-order fees against the whole order. Existing
// adjustments keep their ids but every derived field is recomputed; pairs that no
// longer resolve are destroyed.
func (s *feeSynchronizer) syncOrderLevel(ctx context.Context, p *feePass) error {
	resolved := p.resolver.PerOrderFees(p.order)

	keep := make(map[applicatorKey]struct{}, len(resolved))
	for _, applicator := range resolved {
		keep[applicator.key()] = struct{}{}

		existing, ok := lo.Find(p.order.EnterpriseFeeAdjustments(), func(a *adjustment.Adjustment) bool {
			return a.Matches(types.OriginatorTypeEnterpriseFee, applicator.Fee.ID, applicator.Role)
		})
		if ok {
			changed, err := applicator.UpdateAdjustment(existing, p.order)
			if err != nil {
				return err
			}
			if changed {
				if err := p.writer.update(ctx, existing); err != nil {
					return err
				}
			}
			continue
		}

		adj, err := applicator.CreateOrderAdjustment(ctx, p.order)
		if err != nil {
			return err
		}
		if err := p.writer.create(ctx, adj); err != nil {
			return err
		}
	}

	return p.writer.remove(ctx, s.stale(p.order, p.order.EnterpriseFeeAdjustments(), keep))
}

// stale picks the open fee adjustments whose (fee, role) pair is not in keep
func (s *feeSynchronizer) stale(o *order.Order, adjustments []*adjustment.Adjustment, keep map[applicatorKey]struct{}) []*adjustment.Adjustment {
	return lo.Filter(adjustments, func(a *adjustment.Adjustment, _ int) bool {
		if !a.IsOpen() {
			return false
		}
		if !a.Role.IsFeeRole() {
			s.Logger.Warnw("keeping fee adjustment with unrecognized role",
				"order_id", o.ID,
				"adjustment_id", a.ID,
				"enterprise_fee_id", a.OriginatorID,
				"role", a.Role,
			)
			return false
		}
		_, ok := keep[applicatorKey{feeID: a.OriginatorID, role: a.Role}]
		return !ok
	})
}

// updateLineItem recomputes the line item's existing fee adjustments. Nothing is created
// or destroyed; adjustments whose fee no longer resolves are left for a full pass.
func (s *feeSynchronizer) updateLineItem(ctx context.Context, p *feePass, li *order.LineItem) error {
	applicators := lo.KeyBy(p.resolver.PerItemFeesFor(li.VariantID), func(a FeeApplicator) applicatorKey {
		return a.key()
	})
	return s.updateExisting(ctx, p, li.EnterpriseFeeAdjustments(), applicators, li)
}

func (s *feeSynchronizer) updateOrderLevel(ctx context.Context, p *feePass) error {
	applicators := lo.KeyBy(p.resolver.PerOrderFees(p.order), func(a FeeApplicator) applicatorKey {
		return a.key()
	})
	return s.updateExisting(ctx, p, p.order.EnterpriseFeeAdjustments(), applicators, p.order)
}

func (s *feeSynchronizer) updateExisting(
	ctx context.Context,
	p *feePass,
	adjustments []*adjustment.Adjustment,
	applicators map[applicatorKey]FeeApplicator,
	target calculator.Computable,
) error {
	for _, adj := range adjustments {
		applicator, ok := applicators[applicatorKey{feeID: adj.OriginatorID, role: adj.Role}]
		if !ok {
			s.Logger.Debugw("skipping fee adjustment that no longer resolves",
				"order_id", p.order.ID,
				"adjustment_id", adj.ID,
				"enterprise_fee_id", adj.OriginatorID,
				"role", adj.Role,
			)
			continue
		}

		changed, err := applicator.UpdateAdjustment(adj, target)
		if err != nil {
			return err
		}
		if changed {
			if err := p.writer.update(ctx, adj); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *feeSynchronizer) publish(ctx context.Context, eventName types.EventName, result *FeeSyncResult) {
	if s.FeeEventPublisher == nil {
		return
	}

	event := publisher.NewFeeEvent(ctx, eventName)
	event.OrderID = result.Order.ID
	event.Created = result.Changes.Created
	event.Updated = result.Changes.Updated
	event.Removed = result.Changes.Removed
	event.Total = result.Order.Total.String()

	if err := s.FeeEventPublisher.PublishOrderFees(ctx, event); err != nil {
		// the pass is committed; consumers catch up on the next one
		s.Logger.Warnw("failed to publish order fee event",
			"order_id", result.Order.ID,
			"event_name", eventName,
			"error", err,
		)
	}
}
