package adjustment

import (
	"context"

	"github.com/harvestlane/backoffice/internal/types"
)

// Repository defines the interface for adjustment persistence operations
type Repository interface {
	Create(ctx context.Context, adjustment *Adjustment) error
	Get(ctx context.Context, id string) (*Adjustment, error)
	List(ctx context.Context, filter *types.AdjustmentFilter) ([]*Adjustment, error)
	Update(ctx context.Context, adjustment *Adjustment) error
	Delete(ctx context.Context, id string) error
	// DeleteMany removes the given adjustments, ignoring ids that no longer exist
	DeleteMany(ctx context.Context, ids []string) error
}
