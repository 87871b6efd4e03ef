package service

import (
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/domain/ordercycle"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
)

// FeeResolver works out which fees apply to the variants of one distributor's orders in
// one order cycle. It is built once per synchronization pass and memoises per variant,
// so a pass never walks the exchanges more than once for the same variant.
type FeeResolver struct {
	distributorID string
	orderCycle    *ordercycle.OrderCycle

	byVariant map[string][]FeeApplicator
}

func NewFeeResolver(distributorID string, orderCycle *ordercycle.OrderCycle) *FeeResolver {
	return &FeeResolver{
		distributorID: distributorID,
		orderCycle:    orderCycle,
		byVariant:     make(map[string][]FeeApplicator),
	}
}

// AllFeesFor returns every (fee, role) pair that applies to the variant, per-item and
// per-order alike, in application order: supplier exchanges, the distributor's exchange,
// then coordinator fees. A fee attached to both legs appears once per role.
func (r *FeeResolver) AllFeesFor(variantID string) []FeeApplicator {
	if r.orderCycle == nil {
		return nil
	}
	if cached, ok := r.byVariant[variantID]; ok {
		return cached
	}

	var applicators []FeeApplicator
	for _, exchange := range r.orderCycle.IncomingExchangesCarrying(variantID) {
		applicators = append(applicators, applicatorsFor(exchange.EnterpriseFees, types.AdjustmentRoleSupplier)...)
	}
	if exchange, ok := r.orderCycle.OutgoingExchangeTo(r.distributorID); ok && exchange.CarriesVariant(variantID) {
		applicators = append(applicators, applicatorsFor(exchange.EnterpriseFees, types.AdjustmentRoleDistributor)...)
	}
	applicators = append(applicators, applicatorsFor(r.orderCycle.CoordinatorFees, types.AdjustmentRoleCoordinator)...)

	r.byVariant[variantID] = applicators
	return applicators
}

// PerItemFeesFor returns the fees charged on each line item of the variant
func (r *FeeResolver) PerItemFeesFor(variantID string) []FeeApplicator {
	return lo.Filter(r.AllFeesFor(variantID), func(a FeeApplicator, _ int) bool {
		return !a.Fee.IsPerOrder()
	})
}

// PerOrderFees returns the fees charged once on the order: those of every exchange that
// supplies one of its variants, plus the coordinator's. Each (fee, role) pair appears once
// however many line items share it.
func (r *FeeResolver) PerOrderFees(o *order.Order) []FeeApplicator {
	var applicators []FeeApplicator
	seen := make(map[applicatorKey]struct{})

	add := func(candidates []FeeApplicator) {
		for _, a := range candidates {
			if !a.Fee.IsPerOrder() {
				continue
			}
			if _, ok := seen[a.key()]; ok {
				continue
			}
			seen[a.key()] = struct{}{}
			applicators = append(applicators, a)
		}
	}

	for _, li := range o.LineItems {
		add(r.AllFeesFor(li.VariantID))
	}
	// coordinator fees apply even to an order with nothing in it yet
	if r.orderCycle != nil {
		add(applicatorsFor(r.orderCycle.CoordinatorFees, types.AdjustmentRoleCoordinator))
	}
	return applicators
}

// DistributesVariant reports whether the distributor still offers the variant
func (r *FeeResolver) DistributesVariant(variantID string) bool {
	if r.orderCycle == nil {
		return false
	}
	return r.orderCycle.DistributesVariant(r.distributorID, variantID)
}

func applicatorsFor(fees []*enterprisefee.EnterpriseFee, role types.AdjustmentRole) []FeeApplicator {
	return lo.Map(fees, func(fee *enterprisefee.EnterpriseFee, _ int) FeeApplicator {
		return FeeApplicator{Fee: fee, Role: role}
	})
}
