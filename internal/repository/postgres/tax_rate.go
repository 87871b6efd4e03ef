package postgres

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/lib/pq"
)

const taxRateColumns = `id, tenant_id, name, amount, tax_category_id, zone_id, included_in_price,
	status, created_at, updated_at, created_by, updated_by`

type taxRateRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTaxRateRepository(db *postgres.DB, logger *logger.Logger) taxrate.Repository {
	return &taxRateRepository{db: db, logger: logger}
}

func (r *taxRateRepository) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	var rate taxrate.TaxRate
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates WHERE id = $1 AND tenant_id = $2`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &rate, query, id, types.GetTenantID(ctx)); err != nil {
		return nil, postgres.TranslateError(err, "tax_rate", id)
	}
	return &rate, nil
}

func (r *taxRateRepository) List(ctx context.Context, filter *types.TaxRateFilter) ([]*taxrate.TaxRate, error) {
	if filter == nil {
		filter = &types.TaxRateFilter{}
	}

	where := tenantConditions(ctx, "tenant_id")
	where.add("status = ?", types.StatusPublished)
	if len(filter.TaxRateIDs) > 0 {
		where.add("id = ANY(?)", pq.Array(filter.TaxRateIDs))
	}
	if len(filter.TaxCategoryIDs) > 0 {
		where.add("tax_category_id = ANY(?)", pq.Array(filter.TaxCategoryIDs))
	}
	if filter.ZoneID != "" {
		// rates without a zone apply everywhere
		where.add("zone_id IN (?, '')", filter.ZoneID)
	}

	var rates []*taxrate.TaxRate
	query := `SELECT ` + taxRateColumns + ` FROM tax_rates` + where.where() + ` ORDER BY created_at, id`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rates, query, where.args...); err != nil {
		return nil, postgres.TranslateError(err, "tax_rate", "")
	}
	return rates, nil
}
