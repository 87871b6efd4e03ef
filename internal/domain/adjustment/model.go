package adjustment

import (
	"context"
	"time"

	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// Adjustment is one monetary effect of a fee or tax on an order, line item or shipment.
// Only the fee synchronizer and the tax engine create or destroy adjustments.
type Adjustment struct {
	ID             string               `db:"id" json:"id"`
	TenantID       string               `db:"tenant_id" json:"tenant_id"`
	OrderID        string               `db:"order_id" json:"order_id"`
	AdjustableType types.AdjustableType `db:"adjustable_type" json:"adjustable_type"`
	AdjustableID   string               `db:"adjustable_id" json:"adjustable_id"`
	OriginatorType types.OriginatorType `db:"originator_type" json:"originator_type"`
	OriginatorID   string               `db:"originator_id" json:"originator_id"`
	Label          string               `db:"label" json:"label"`
	Amount         decimal.Decimal      `db:"amount" json:"amount"`
	// Role is empty for tax adjustments
	Role types.AdjustmentRole `db:"role" json:"role,omitempty"`
	// Eligible adjustments count towards totals; ineligible ones are kept for audit only
	Eligible bool                  `db:"eligible" json:"eligible"`
	State    types.AdjustmentState `db:"state" json:"state"`
	// Included marks tax that is already part of the price it applies to
	Included bool `db:"included" json:"included"`
	// TaxCategoryID is the category a fee adjustment is taxed under, refreshed on every pass
	TaxCategoryID string    `db:"tax_category_id" json:"tax_category_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// New returns an open, eligible adjustment with a fresh id
func New(ctx context.Context, orderID string, adjustableType types.AdjustableType, adjustableID string) *Adjustment {
	now := time.Now().UTC()
	return &Adjustment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ADJUSTMENT),
		TenantID:       types.GetTenantID(ctx),
		OrderID:        orderID,
		AdjustableType: adjustableType,
		AdjustableID:   adjustableID,
		Amount:         decimal.Zero,
		Eligible:       true,
		State:          types.AdjustmentStateOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsEnterpriseFee reports whether the adjustment was produced by an enterprise fee
func (a *Adjustment) IsEnterpriseFee() bool {
	return a.OriginatorType == types.OriginatorTypeEnterpriseFee
}

// IsTax reports whether the adjustment was produced by a tax rate
func (a *Adjustment) IsTax() bool {
	return a.OriginatorType == types.OriginatorTypeTaxRate
}

// IsOpen reports whether the adjustment may still be recomputed or removed
func (a *Adjustment) IsOpen() bool {
	return a.State == types.AdjustmentStateOpen
}

// Matches reports whether the adjustment belongs to the given originator under the given role
func (a *Adjustment) Matches(originatorType types.OriginatorType, originatorID string, role types.AdjustmentRole) bool {
	return a.OriginatorType == originatorType && a.OriginatorID == originatorID && a.Role == role
}

// Key identifies the (originator, adjustable, role) triple that may have at most one live adjustment
type Key struct {
	OriginatorType types.OriginatorType
	OriginatorID   string
	AdjustableType types.AdjustableType
	AdjustableID   string
	Role           types.AdjustmentRole
}

// Key returns the uniqueness key of the adjustment
func (a *Adjustment) Key() Key {
	return Key{
		OriginatorType: a.OriginatorType,
		OriginatorID:   a.OriginatorID,
		AdjustableType: a.AdjustableType,
		AdjustableID:   a.AdjustableID,
		Role:           a.Role,
	}
}

// SetAmount updates the amount and reports whether it changed
func (a *Adjustment) SetAmount(amount decimal.Decimal) bool {
	if a.Amount.Equal(amount) {
		return false
	}
	a.Amount = amount
	a.UpdatedAt = time.Now().UTC()
	return true
}

// Sum adds the amounts of eligible adjustments accepted by the predicate
func Sum(adjustments []*Adjustment, include func(*Adjustment) bool) decimal.Decimal {
	total := decimal.Zero
	for _, a := range adjustments {
		if !a.Eligible {
			continue
		}
		if include == nil || include(a) {
			total = total.Add(a.Amount)
		}
	}
	return total
}
