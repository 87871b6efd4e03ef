package ordercycle

import (
	"slices"

	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/samber/lo"
)

// OrderCycle is a time-boxed selling window run by a coordinator. Incoming exchanges
// bring variants from suppliers to the coordinator; outgoing exchanges send them on
// to distributors.
type OrderCycle struct {
	ID              string                         `db:"id" json:"id"`
	TenantID        string                         `db:"tenant_id" json:"tenant_id"`
	Name            string                         `db:"name" json:"name"`
	CoordinatorID   string                         `db:"coordinator_id" json:"coordinator_id"`
	CoordinatorFees []*enterprisefee.EnterpriseFee `db:"-" json:"coordinator_fees"`
	Exchanges       []*Exchange                    `db:"-" json:"exchanges"`
}

// Exchange moves a set of variants between two enterprises within an order cycle
type Exchange struct {
	ID             string                         `db:"id" json:"id"`
	OrderCycleID   string                         `db:"order_cycle_id" json:"order_cycle_id"`
	SenderID       string                         `db:"sender_id" json:"sender_id"`
	ReceiverID     string                         `db:"receiver_id" json:"receiver_id"`
	Incoming       bool                           `db:"incoming" json:"incoming"`
	VariantIDs     []string                       `db:"-" json:"variant_ids"`
	EnterpriseFees []*enterprisefee.EnterpriseFee `db:"-" json:"enterprise_fees"`
}

// CarriesVariant reports whether the exchange moves the variant
func (e *Exchange) CarriesVariant(variantID string) bool {
	return slices.Contains(e.VariantIDs, variantID)
}

// IncomingExchangesCarrying returns the supplier exchanges that bring the variant in
func (oc *OrderCycle) IncomingExchangesCarrying(variantID string) []*Exchange {
	return lo.Filter(oc.Exchanges, func(e *Exchange, _ int) bool {
		return e.Incoming && e.CarriesVariant(variantID)
	})
}

// OutgoingExchangeTo returns the exchange sending variants to the distributor
func (oc *OrderCycle) OutgoingExchangeTo(distributorID string) (*Exchange, bool) {
	return lo.Find(oc.Exchanges, func(e *Exchange) bool {
		return !e.Incoming && e.ReceiverID == distributorID
	})
}

// VariantsDistributedBy lists the variants the distributor receives in this cycle
func (oc *OrderCycle) VariantsDistributedBy(distributorID string) []string {
	exchange, ok := oc.OutgoingExchangeTo(distributorID)
	if !ok {
		return nil
	}
	return exchange.VariantIDs
}

// DistributesVariant reports whether the distributor still offers the variant in this cycle
func (oc *OrderCycle) DistributesVariant(distributorID, variantID string) bool {
	exchange, ok := oc.OutgoingExchangeTo(distributorID)
	return ok && exchange.CarriesVariant(variantID)
}

// HasFee reports whether the fee is attached anywhere in the cycle
func (oc *OrderCycle) HasFee(feeID string) bool {
	match := func(f *enterprisefee.EnterpriseFee) bool { return f.ID == feeID }
	if lo.ContainsBy(oc.CoordinatorFees, match) {
		return true
	}
	return lo.ContainsBy(oc.Exchanges, func(e *Exchange) bool {
		return lo.ContainsBy(e.EnterpriseFees, match)
	})
}
