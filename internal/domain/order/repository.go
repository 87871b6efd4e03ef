package order

import (
	"context"

	"github.com/harvestlane/backoffice/internal/types"
)

// Repository defines the interface for order persistence operations.
// Get returns a fully loaded aggregate so the fee engine never queries mid-pass.
type Repository interface {
	Get(ctx context.Context, id string) (*Order, error)
	// GetByLineItemID returns the order owning a line item
	GetByLineItemID(ctx context.Context, lineItemID string) (*Order, error)
	List(ctx context.Context, filter *types.OrderFilter) ([]*Order, error)
	// UpdateTotals persists the computed totals columns only
	UpdateTotals(ctx context.Context, order *Order) error
}
