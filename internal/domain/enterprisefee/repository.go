package enterprisefee

import (
	"context"

	"github.com/harvestlane/backoffice/internal/types"
)

// Repository defines the interface for enterprise fee persistence operations
type Repository interface {
	Create(ctx context.Context, fee *EnterpriseFee) error
	Get(ctx context.Context, id string) (*EnterpriseFee, error)
	List(ctx context.Context, filter *types.EnterpriseFeeFilter) ([]*EnterpriseFee, error)
	Update(ctx context.Context, fee *EnterpriseFee) error
	Delete(ctx context.Context, id string) error
}
