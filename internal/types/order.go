package types

import (
	"slices"
)

// OrderState is the checkout lifecycle phase of an order
type OrderState string

const (
	OrderStateCart           OrderState = "cart"
	OrderStateAddress        OrderState = "address"
	OrderStateDelivery       OrderState = "delivery"
	OrderStatePayment        OrderState = "payment"
	OrderStateConfirmation   OrderState = "confirmation"
	OrderStateComplete       OrderState = "complete"
	OrderStateCanceled       OrderState = "canceled"
	OrderStateAwaitingReturn OrderState = "awaiting_return"
	OrderStateReturned       OrderState = "returned"
)

// checkoutSteps is the ordered pre-completion flow
var checkoutSteps = []OrderState{
	OrderStateCart,
	OrderStateAddress,
	OrderStateDelivery,
	OrderStatePayment,
	OrderStateConfirmation,
	OrderStateComplete,
}

// PastPayment reports whether the order has left the pre-payment phase,
// after which fee adjustments carry a firm tax figure.
func (s OrderState) PastPayment() bool {
	switch s {
	case OrderStateCanceled, OrderStateAwaitingReturn, OrderStateReturned:
		return true
	}
	idx := slices.Index(checkoutSteps, s)
	return idx > slices.Index(checkoutSteps, OrderStatePayment)
}

// IsCompleted reports whether checkout has finished for the order
func (s OrderState) IsCompleted() bool {
	return slices.Contains([]OrderState{
		OrderStateComplete,
		OrderStateCanceled,
		OrderStateAwaitingReturn,
		OrderStateReturned,
	}, s)
}

// OrderFilter narrows order listings
type OrderFilter struct {
	OrderIDs      []string
	OrderCycleIDs []string
	DistributorID string
	States        []OrderState
	// ExcludeCompleted drops orders whose checkout has finished
	ExcludeCompleted bool
	Limit            int
}
