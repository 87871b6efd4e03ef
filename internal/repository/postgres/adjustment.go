package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/lib/pq"
)

const adjustmentColumns = `id, tenant_id, order_id, adjustable_type, adjustable_id, originator_type, originator_id,
	label, amount, role, eligible, state, included, tax_category_id, created_at, updated_at`

type adjustmentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAdjustmentRepository(db *postgres.DB, logger *logger.Logger) adjustment.Repository {
	return &adjustmentRepository{db: db, logger: logger}
}

func (r *adjustmentRepository) Create(ctx context.Context, a *adjustment.Adjustment) error {
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `) VALUES (
			:id, :tenant_id, :order_id, :adjustable_type, :adjustable_id, :originator_type, :originator_id,
			:label, :amount, :role, :eligible, :state, :included, :tax_category_id, :created_at, :updated_at
		)`

	r.logger.Debugw("creating adjustment",
		"adjustment_id", a.ID,
		"order_id", a.OrderID,
		"originator_id", a.OriginatorID,
		"role", a.Role,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a); err != nil {
		return postgres.TranslateError(err, "adjustment", a.ID)
	}
	return nil
}

func (r *adjustmentRepository) Get(ctx context.Context, id string) (*adjustment.Adjustment, error) {
	var a adjustment.Adjustment
	query := `SELECT ` + adjustmentColumns + ` FROM adjustments WHERE id = $1 AND tenant_id = $2`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &a, query, id, types.GetTenantID(ctx)); err != nil {
		return nil, postgres.TranslateError(err, "adjustment", id)
	}
	return &a, nil
}

func (r *adjustmentRepository) List(ctx context.Context, filter *types.AdjustmentFilter) ([]*adjustment.Adjustment, error) {
	if filter == nil {
		filter = &types.AdjustmentFilter{}
	}

	where := tenantConditions(ctx, "tenant_id")

	if filter.OrderID != "" {
		where.add("order_id = ?", filter.OrderID)
	}
	if filter.AdjustableType != "" {
		where.add("adjustable_type = ?", filter.AdjustableType)
	}
	if len(filter.AdjustableIDs) > 0 {
		where.add("adjustable_id = ANY(?)", pq.Array(filter.AdjustableIDs))
	}
	if filter.OriginatorType != "" {
		where.add("originator_type = ?", filter.OriginatorType)
	}
	if len(filter.OriginatorIDs) > 0 {
		where.add("originator_id = ANY(?)", pq.Array(filter.OriginatorIDs))
	}
	if filter.State != "" {
		where.add("state = ?", filter.State)
	}

	query := `SELECT ` + adjustmentColumns + ` FROM adjustments` + where.where() + ` ORDER BY created_at, id`

	var adjustments []*adjustment.Adjustment
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &adjustments, query, where.args...); err != nil {
		return nil, postgres.TranslateError(err, "adjustment", filter.OrderID)
	}
	return adjustments, nil
}

func (r *adjustmentRepository) Update(ctx context.Context, a *adjustment.Adjustment) error {
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE adjustments SET
			label = :label,
			amount = :amount,
			eligible = :eligible,
			state = :state,
			included = :included,
			tax_category_id = :tax_category_id,
			updated_at = :updated_at
		WHERE id = :id
		AND tenant_id = :tenant_id`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, a)
	if err != nil {
		return postgres.TranslateError(err, "adjustment", a.ID)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return postgres.TranslateError(err, "adjustment", a.ID)
	}
	if rows == 0 {
		return ierr.NewError("adjustment not found").
			WithHintf("Adjustment %s was not found", a.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *adjustmentRepository) Delete(ctx context.Context, id string) error {
	return r.DeleteMany(ctx, []string{id})
}

func (r *adjustmentRepository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM adjustments WHERE id = ANY($1) AND tenant_id = $2`
	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, pq.Array(ids), types.GetTenantID(ctx)); err != nil {
		return postgres.TranslateError(err, "adjustment", strings.Join(ids, ","))
	}

	r.logger.Debugw("deleted adjustments", "count", len(ids))
	return nil
}
