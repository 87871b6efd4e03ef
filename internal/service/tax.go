package service

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxService computes tax on orders, line items and shipments and keeps the
// order's tax adjustments in step with its contents.
type TaxService interface {
	// ComputeOrder taxes everything on the order in the rate's category: goods,
	// per-item fees and per-order fees. The summed base is rounded once.
	ComputeOrder(o *order.Order, rate *taxrate.TaxRate) decimal.Decimal
	// ComputeLineItem taxes a single line item on its own
	ComputeLineItem(li *order.LineItem, rate *taxrate.TaxRate) decimal.Decimal
	// ComputeShipment taxes a shipment cost
	ComputeShipment(s *order.Shipment, rate *taxrate.TaxRate) decimal.Decimal

	// RatesFor loads the rates of the order's tax zone. An order without a zone is not taxed.
	RatesFor(ctx context.Context, o *order.Order) ([]*taxrate.TaxRate, error)
	// ApplyTaxes creates, updates or removes the open tax adjustments of the order
	// so there is exactly one per applicable rate and taxed subject
	ApplyTaxes(ctx context.Context, o *order.Order, rates []*taxrate.TaxRate) (AdjustmentChanges, error)
}

type taxService struct {
	ServiceParams
}

func NewTaxService(params ServiceParams) TaxService {
	return &taxService{
		ServiceParams: params,
	}
}

func (s *taxService) ComputeOrder(o *order.Order, rate *taxrate.TaxRate) decimal.Decimal {
	category := rate.TaxCategoryID
	if category == "" {
		return decimal.Zero
	}

	base := decimal.Zero
	for _, li := range o.LineItems {
		if li.TaxCategoryID() == category {
			base = base.Add(li.Amount())
		}
		base = base.Add(adjustment.Sum(li.EnterpriseFeeAdjustments(), taxedUnder(category)))
	}
	base = base.Add(adjustment.Sum(o.EnterpriseFeeAdjustments(), taxedUnder(category)))

	return calculator.TaxOn(base, rate.Amount, rate.IncludedInPrice)
}

func (s *taxService) ComputeLineItem(li *order.LineItem, rate *taxrate.TaxRate) decimal.Decimal {
	if rate.TaxCategoryID == "" || li.TaxCategoryID() != rate.TaxCategoryID {
		return decimal.Zero
	}
	return s.compute(li, rate)
}

func (s *taxService) ComputeShipment(shipment *order.Shipment, rate *taxrate.TaxRate) decimal.Decimal {
	if rate.TaxCategoryID == "" || shipment.TaxCategoryID != rate.TaxCategoryID {
		return decimal.Zero
	}
	return s.compute(shipment, rate)
}

func (s *taxService) compute(subject calculator.Computable, rate *taxrate.TaxRate) decimal.Decimal {
	amount, err := rate.Calculator().Compute(subject)
	if err != nil {
		// a rate's own calculator only fails on a nil subject
		s.Logger.Errorw("failed to compute tax",
			"tax_rate_id", rate.ID,
			"error", err,
		)
		return decimal.Zero
	}
	return amount
}

func (s *taxService) RatesFor(ctx context.Context, o *order.Order) ([]*taxrate.TaxRate, error) {
	if o.TaxZoneID == "" {
		return nil, nil
	}

	rates, err := s.TaxRateRepo.List(ctx, &types.TaxRateFilter{ZoneID: o.TaxZoneID})
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (s *taxService) ApplyTaxes(ctx context.Context, o *order.Order, rates []*taxrate.TaxRate) (AdjustmentChanges, error) {
	w := newAdjustmentWriter(s.AdjustmentRepo, o)

	existing := lo.Filter(o.AllAdjustments(), func(a *adjustment.Adjustment, _ int) bool {
		return a.IsTax() && a.IsOpen()
	})
	byKey := lo.KeyBy(existing, func(a *adjustment.Adjustment) adjustment.Key { return a.Key() })
	wanted := make(map[adjustment.Key]struct{})

	apply := func(rate *taxrate.TaxRate, adjustableType types.AdjustableType, adjustableID string, amount decimal.Decimal) error {
		if amount.IsZero() {
			return nil
		}

		key := adjustment.Key{
			OriginatorType: types.OriginatorTypeTaxRate,
			OriginatorID:   rate.ID,
			AdjustableType: adjustableType,
			AdjustableID:   adjustableID,
		}
		wanted[key] = struct{}{}

		if adj, ok := byKey[key]; ok {
			changed := adj.SetAmount(amount)
			if adj.Label != rate.Label() || adj.Included != rate.IncludedInPrice {
				adj.Label = rate.Label()
				adj.Included = rate.IncludedInPrice
				changed = true
			}
			if !changed {
				return nil
			}
			return w.update(ctx, adj)
		}

		adj := adjustment.New(ctx, o.ID, adjustableType, adjustableID)
		adj.OriginatorType = types.OriginatorTypeTaxRate
		adj.OriginatorID = rate.ID
		adj.Label = rate.Label()
		adj.Amount = amount
		adj.Included = rate.IncludedInPrice
		adj.TaxCategoryID = rate.TaxCategoryID
		return w.create(ctx, adj)
	}

	for _, rate := range rates {
		if err := apply(rate, types.AdjustableTypeOrder, o.ID, s.ComputeOrder(o, rate)); err != nil {
			return w.changes, err
		}
		for _, shipment := range o.Shipments {
			if err := apply(rate, types.AdjustableTypeShipment, shipment.ID, s.ComputeShipment(shipment, rate)); err != nil {
				return w.changes, err
			}
		}
	}

	stale := lo.Filter(existing, func(a *adjustment.Adjustment, _ int) bool {
		_, ok := wanted[a.Key()]
		return !ok
	})
	if err := w.remove(ctx, stale); err != nil {
		return w.changes, err
	}

	s.Logger.Debugw("applied taxes",
		"order_id", o.ID,
		"rates", len(rates),
		"created", w.changes.Created,
		"updated", w.changes.Updated,
		"removed", w.changes.Removed,
	)
	return w.changes, nil
}

// taxedUnder matches fee adjustments whose resolved tax category is the given one
func taxedUnder(category string) func(*adjustment.Adjustment) bool {
	return func(a *adjustment.Adjustment) bool {
		return a.TaxCategoryID == category
	}
}
