package ordercycle

import "context"

// Repository defines the interface for order cycle persistence operations.
// Get returns the cycle with its exchanges, exchange variants and every attached fee.
type Repository interface {
	Get(ctx context.Context, id string) (*OrderCycle, error)
	// ListIDsByEnterpriseFee returns the ids of cycles the fee is attached to, as a coordinator or exchange fee
	ListIDsByEnterpriseFee(ctx context.Context, feeID string) ([]string, error)
}
