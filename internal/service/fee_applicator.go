package service

import (
	"context"
	"fmt"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/order"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// FeeApplicator applies one enterprise fee under one role
type FeeApplicator struct {
	Fee  *enterprisefee.EnterpriseFee
	Role types.AdjustmentRole
}

type applicatorKey struct {
	feeID string
	role  types.AdjustmentRole
}

func (a FeeApplicator) key() applicatorKey {
	return applicatorKey{feeID: a.Fee.ID, role: a.Role}
}

// Label is the customer-facing description of the adjustment, e.g. "Packing fee by supplier Green Farm"
func (a FeeApplicator) Label() string {
	return fmt.Sprintf("%s fee by %s %s", a.Fee.Name, a.Role, a.Fee.EnterpriseName)
}

// CreateLineItemAdjustment builds a new fee adjustment for the line item. It returns nil
// when the variant is no longer distributed: a delisted variant never gains a new fee.
func (a FeeApplicator) CreateLineItemAdjustment(ctx context.Context, li *order.LineItem, distributed bool) (*adjustment.Adjustment, error) {
	if !distributed {
		return nil, nil
	}

	amount, err := a.compute(li)
	if err != nil {
		return nil, err
	}

	adj := a.newAdjustment(ctx, li.OrderID, types.AdjustableTypeLineItem, li.ID)
	adj.Amount = amount
	adj.TaxCategoryID = a.taxCategoryFor(li)
	return adj, nil
}

// CreateOrderAdjustment builds a new per-order fee adjustment on the order
func (a FeeApplicator) CreateOrderAdjustment(ctx context.Context, o *order.Order) (*adjustment.Adjustment, error) {
	amount, err := a.compute(o)
	if err != nil {
		return nil, err
	}

	adj := a.newAdjustment(ctx, o.ID, types.AdjustableTypeOrder, o.ID)
	adj.Amount = amount
	adj.TaxCategoryID = a.taxCategoryFor(o)
	return adj, nil
}

// UpdateAdjustment recomputes an existing adjustment against its target and reports
// whether anything changed. Amount, label and tax category are all rebuilt from the fee,
// so a refreshed adjustment matches what CreateLineItemAdjustment or CreateOrderAdjustment
// would produce. Finalized adjustments are left alone.
func (a FeeApplicator) UpdateAdjustment(adj *adjustment.Adjustment, target calculator.Computable) (bool, error) {
	if !adj.IsOpen() {
		return false, nil
	}

	amount, err := a.compute(target)
	if err != nil {
		return false, err
	}

	changed := adj.SetAmount(amount)
	if label := a.Label(); adj.Label != label {
		adj.Label = label
		changed = true
	}
	if category := a.taxCategoryFor(target); adj.TaxCategoryID != category {
		adj.TaxCategoryID = category
		changed = true
	}
	return changed, nil
}

// taxCategoryFor picks the category the adjustment is taxed under. A per-order fee has
// no product to inherit from and always uses its own.
func (a FeeApplicator) taxCategoryFor(target calculator.Computable) string {
	if li, ok := target.(*order.LineItem); ok {
		return a.Fee.TaxCategoryFor(li.TaxCategoryID())
	}
	return a.Fee.TaxCategoryID
}

func (a FeeApplicator) compute(target calculator.Computable) (decimal.Decimal, error) {
	amount, err := a.Fee.Calculator.Compute(target)
	if err != nil {
		return amount, ierr.WithError(err).
			WithHintf("Fee %s could not be computed", a.Fee.Name).
			WithReportableDetails(map[string]any{
				"fee_id":          a.Fee.ID,
				"role":            a.Role,
				"calculator_type": a.Fee.Calculator.Type,
			}).
			Mark(ierr.ErrConfiguration)
	}
	return amount, nil
}

func (a FeeApplicator) newAdjustment(ctx context.Context, orderID string, adjustableType types.AdjustableType, adjustableID string) *adjustment.Adjustment {
	adj := adjustment.New(ctx, orderID, adjustableType, adjustableID)
	adj.OriginatorType = types.OriginatorTypeEnterpriseFee
	adj.OriginatorID = a.Fee.ID
	adj.Role = a.Role
	adj.Label = a.Label()
	return adj
}
