package taxrate

import (
	"context"

	"github.com/harvestlane/backoffice/internal/types"
)

// Repository defines the interface for tax rate persistence operations
type Repository interface {
	Get(ctx context.Context, id string) (*TaxRate, error)
	// List returns published rates matching the filter
	List(ctx context.Context, filter *types.TaxRateFilter) ([]*TaxRate, error)
}
