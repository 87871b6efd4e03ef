package service

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderTotalsService recomputes the cached totals of an order from its contents
type OrderTotalsService interface {
	// ComputeTotals fills the totals on the loaded order without persisting them
	ComputeTotals(o *order.Order)
	// UpdateTotals computes and persists the totals
	UpdateTotals(ctx context.Context, o *order.Order) error
}

type orderTotalsService struct {
	ServiceParams
}

func NewOrderTotalsService(params ServiceParams) OrderTotalsService {
	return &orderTotalsService{
		ServiceParams: params,
	}
}

// ComputeTotals sums goods, shipments and eligible adjustments. Tax included in a price
// is reported but not added again.
func (s *orderTotalsService) ComputeTotals(o *order.Order) {
	all := o.AllAdjustments()

	o.ItemTotal = o.ComputeItemTotal()
	o.ShipmentTotal = sumShipments(o.Shipments)

	fees := adjustment.Sum(all, func(a *adjustment.Adjustment) bool {
		return a.IsEnterpriseFee()
	})
	o.AdditionalTaxTotal = adjustment.Sum(all, func(a *adjustment.Adjustment) bool {
		return a.IsTax() && !a.Included
	})
	o.IncludedTaxTotal = adjustment.Sum(all, func(a *adjustment.Adjustment) bool {
		return a.IsTax() && a.Included
	})

	o.AdjustmentTotal = fees.Add(o.AdditionalTaxTotal)
	o.Total = o.ItemTotal.Add(o.ShipmentTotal).Add(o.AdjustmentTotal)
}

func (s *orderTotalsService) UpdateTotals(ctx context.Context, o *order.Order) error {
	s.ComputeTotals(o)

	if err := s.OrderRepo.UpdateTotals(ctx, o); err != nil {
		return err
	}

	s.Logger.Debugw("updated order totals",
		"order_id", o.ID,
		"item_total", o.ItemTotal,
		"adjustment_total", o.AdjustmentTotal,
		"total", o.Total,
	)
	return nil
}

func sumShipments(shipments []*order.Shipment) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shipments {
		total = total.Add(s.Cost)
	}
	return total
}
