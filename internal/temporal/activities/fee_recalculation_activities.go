package activities

import (
	"context"

	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/temporal/models"
	"github.com/harvestlane/backoffice/internal/types"
)

// FeeRecalculationActivities resynchronize orders after an enterprise fee changed.
// Methods are registered as "ListAffectedOrders" and "RecreateOrderFees".
type FeeRecalculationActivities struct {
	recalculation service.FeeRecalculationService
}

func NewFeeRecalculationActivities(recalculation service.FeeRecalculationService) *FeeRecalculationActivities {
	return &FeeRecalculationActivities{
		recalculation: recalculation,
	}
}

// ListAffectedOrders returns the open orders in the order cycles the fee is attached to
func (a *FeeRecalculationActivities) ListAffectedOrders(ctx context.Context, input models.ListAffectedOrdersInput) ([]string, error) {
	if input.TenantID == "" {
		return nil, models.ErrInvalidTenantContext
	}

	ctx = types.SetTenantID(ctx, input.TenantID)
	return a.recalculation.ListAffectedOrders(ctx, input.EnterpriseFeeID)
}

// RecreateOrderFees resynchronizes one batch of orders. Orders that fail are reported in the
// result rather than failing the activity, so a retry does not redo the whole batch.
func (a *FeeRecalculationActivities) RecreateOrderFees(ctx context.Context, input models.RecreateOrderFeesInput) (*service.RecalculationResult, error) {
	if input.TenantID == "" {
		return nil, models.ErrInvalidTenantContext
	}

	ctx = types.SetTenantID(ctx, input.TenantID)
	return a.recalculation.RecalculateOrders(ctx, input.EnterpriseFeeID, input.OrderIDs)
}
