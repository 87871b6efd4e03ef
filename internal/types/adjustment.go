package types

import (
	"slices"

	ierr "github.com/harvestlane/backoffice/internal/errors"
)

// AdjustmentRole attributes a fee adjustment to the party that earns it.
// Tax adjustments carry no role.
type AdjustmentRole string

const (
	AdjustmentRoleSupplier    AdjustmentRole = "supplier"
	AdjustmentRoleDistributor AdjustmentRole = "distributor"
	AdjustmentRoleCoordinator AdjustmentRole = "coordinator"
	AdjustmentRoleNone        AdjustmentRole = ""
)

func (r AdjustmentRole) String() string {
	return string(r)
}

// IsFeeRole reports whether the role is one the fee synchronizer knows how to resolve
func (r AdjustmentRole) IsFeeRole() bool {
	return slices.Contains([]AdjustmentRole{
		AdjustmentRoleSupplier,
		AdjustmentRoleDistributor,
		AdjustmentRoleCoordinator,
	}, r)
}

func (r AdjustmentRole) Validate() error {
	if r == AdjustmentRoleNone || r.IsFeeRole() {
		return nil
	}
	return ierr.NewError("invalid adjustment role").
		WithHintf("Adjustment role must be one of supplier, distributor or coordinator, got %q", string(r)).
		Mark(ierr.ErrValidation)
}

// AdjustmentState is open until the order is finalized; finalized adjustments are frozen
type AdjustmentState string

const (
	AdjustmentStateOpen      AdjustmentState = "open"
	AdjustmentStateFinalized AdjustmentState = "finalized"
)

// AdjustableType is the kind of record an adjustment is attached to
type AdjustableType string

const (
	AdjustableTypeOrder    AdjustableType = "order"
	AdjustableTypeLineItem AdjustableType = "line_item"
	AdjustableTypeShipment AdjustableType = "shipment"
)

func (t AdjustableType) Validate() error {
	allowed := []AdjustableType{AdjustableTypeOrder, AdjustableTypeLineItem, AdjustableTypeShipment}
	if !slices.Contains(allowed, t) {
		return ierr.NewError("invalid adjustable type").
			WithHint("Adjustable type must be order, line_item or shipment").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// OriginatorType is the kind of configuration row that produced an adjustment
type OriginatorType string

const (
	OriginatorTypeEnterpriseFee OriginatorType = "enterprise_fee"
	OriginatorTypeTaxRate       OriginatorType = "tax_rate"
)

// AdjustmentFilter narrows adjustment listings
type AdjustmentFilter struct {
	OrderID        string
	AdjustableType AdjustableType
	AdjustableIDs  []string
	OriginatorType OriginatorType
	OriginatorIDs  []string
	State          AdjustmentState
}
