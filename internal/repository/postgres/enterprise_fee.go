package postgres

import (
	"context"
	"time"

	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const enterpriseFeeSelect = `
	SELECT f.id, f.tenant_id, f.enterprise_id, e.name AS enterprise_name, f.name, f.fee_type,
		f.calculator_id, f.calculator_type, f.calculator_preferences,
		f.tax_category_id, f.inherits_tax_category,
		f.status, f.created_at, f.updated_at, f.created_by, f.updated_by
	FROM enterprise_fees f
	JOIN enterprises e ON e.id = f.enterprise_id`

type enterpriseFeeRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewEnterpriseFeeRepository(db *postgres.DB, logger *logger.Logger) enterprisefee.Repository {
	return &enterpriseFeeRepository{db: db, logger: logger}
}

// enterpriseFeeRow is the flat column layout of enterprise_fees joined with its enterprise
type enterpriseFeeRow struct {
	ID                    string                 `db:"id"`
	EnterpriseID          string                 `db:"enterprise_id"`
	EnterpriseName        string                 `db:"enterprise_name"`
	Name                  string                 `db:"name"`
	FeeType               types.FeeType          `db:"fee_type"`
	CalculatorID          string                 `db:"calculator_id"`
	CalculatorType        types.CalculatorType   `db:"calculator_type"`
	CalculatorPreferences calculator.Preferences `db:"calculator_preferences"`
	TaxCategoryID         string                 `db:"tax_category_id"`
	InheritsTaxCategory   bool                   `db:"inherits_tax_category"`
	types.BaseModel
}

func toEnterpriseFeeRow(f *enterprisefee.EnterpriseFee) enterpriseFeeRow {
	return enterpriseFeeRow{
		ID:                    f.ID,
		EnterpriseID:          f.EnterpriseID,
		EnterpriseName:        f.EnterpriseName,
		Name:                  f.Name,
		FeeType:               f.FeeType,
		CalculatorID:          f.Calculator.ID,
		CalculatorType:        f.Calculator.Type,
		CalculatorPreferences: f.Calculator.Preferences,
		TaxCategoryID:         f.TaxCategoryID,
		InheritsTaxCategory:   f.InheritsTaxCategory,
		BaseModel:             f.BaseModel,
	}
}

func (row enterpriseFeeRow) toDomain() *enterprisefee.EnterpriseFee {
	return &enterprisefee.EnterpriseFee{
		ID:             row.ID,
		EnterpriseID:   row.EnterpriseID,
		EnterpriseName: row.EnterpriseName,
		Name:           row.Name,
		FeeType:        row.FeeType,
		Calculator: calculator.Calculator{
			ID:          row.CalculatorID,
			Type:        row.CalculatorType,
			Preferences: row.CalculatorPreferences,
		},
		TaxCategoryID:       row.TaxCategoryID,
		InheritsTaxCategory: row.InheritsTaxCategory,
		BaseModel:           row.BaseModel,
	}
}

func (r *enterpriseFeeRepository) Create(ctx context.Context, f *enterprisefee.EnterpriseFee) error {
	query := `
		INSERT INTO enterprise_fees (
			id, tenant_id, enterprise_id, name, fee_type,
			calculator_id, calculator_type, calculator_preferences,
			tax_category_id, inherits_tax_category,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :tenant_id, :enterprise_id, :name, :fee_type,
			:calculator_id, :calculator_type, :calculator_preferences,
			:tax_category_id, :inherits_tax_category,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating enterprise fee",
		"fee_id", f.ID,
		"enterprise_id", f.EnterpriseID,
		"calculator_type", f.Calculator.Type,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, toEnterpriseFeeRow(f)); err != nil {
		return postgres.TranslateError(err, "enterprise_fee", f.ID)
	}
	return nil
}

func (r *enterpriseFeeRepository) Get(ctx context.Context, id string) (*enterprisefee.EnterpriseFee, error) {
	var row enterpriseFeeRow
	query := enterpriseFeeSelect + ` WHERE f.id = $1 AND f.tenant_id = $2 AND f.status <> $3`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &row, query, id, types.GetTenantID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, postgres.TranslateError(err, "enterprise_fee", id)
	}
	return row.toDomain(), nil
}

func (r *enterpriseFeeRepository) List(ctx context.Context, filter *types.EnterpriseFeeFilter) ([]*enterprisefee.EnterpriseFee, error) {
	if filter == nil {
		filter = &types.EnterpriseFeeFilter{}
	}

	where := tenantConditions(ctx, "f.tenant_id")
	if filter.EnterpriseID != "" {
		where.add("f.enterprise_id = ?", filter.EnterpriseID)
	}
	if len(filter.FeeIDs) > 0 {
		where.add("f.id = ANY(?)", pq.Array(filter.FeeIDs))
	}
	if filter.Status != "" {
		where.add("f.status = ?", filter.Status)
	} else {
		where.add("f.status <> ?", types.StatusDeleted)
	}

	var rows []enterpriseFeeRow
	query := enterpriseFeeSelect + where.where() + ` ORDER BY f.created_at, f.id`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, where.args...); err != nil {
		return nil, postgres.TranslateError(err, "enterprise_fee", filter.EnterpriseID)
	}

	return lo.Map(rows, func(row enterpriseFeeRow, _ int) *enterprisefee.EnterpriseFee {
		return row.toDomain()
	}), nil
}

func (r *enterpriseFeeRepository) Update(ctx context.Context, f *enterprisefee.EnterpriseFee) error {
	f.UpdatedAt = time.Now().UTC()
	f.UpdatedBy = types.GetUserID(ctx)

	query := `
		UPDATE enterprise_fees SET
			name = :name,
			fee_type = :fee_type,
			calculator_id = :calculator_id,
			calculator_type = :calculator_type,
			calculator_preferences = :calculator_preferences,
			tax_category_id = :tax_category_id,
			inherits_tax_category = :inherits_tax_category,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id
		AND tenant_id = :tenant_id`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, toEnterpriseFeeRow(f))
	if err != nil {
		return postgres.TranslateError(err, "enterprise_fee", f.ID)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return postgres.TranslateError(err, "enterprise_fee", f.ID)
	}
	if rows == 0 {
		return ierr.NewError("enterprise fee not found").
			WithHintf("Enterprise fee %s was not found", f.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// Delete soft-deletes the fee. Adjustments it already produced stay until the next synchronization.
func (r *enterpriseFeeRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE enterprise_fees SET status = $1, updated_at = $2, updated_by = $3
		WHERE id = $4 AND tenant_id = $5`

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query,
		types.StatusDeleted,
		time.Now().UTC(),
		types.GetUserID(ctx),
		id,
		types.GetTenantID(ctx),
	)
	if err != nil {
		return postgres.TranslateError(err, "enterprise_fee", id)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return postgres.TranslateError(err, "enterprise_fee", id)
	}
	if rows == 0 {
		return ierr.NewError("enterprise fee not found").
			WithHintf("Enterprise fee %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
