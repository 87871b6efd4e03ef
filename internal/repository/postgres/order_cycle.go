package postgres

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/ordercycle"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

type orderCycleRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrderCycleRepository(db *postgres.DB, logger *logger.Logger) ordercycle.Repository {
	return &orderCycleRepository{db: db, logger: logger}
}

type exchangeVariantRow struct {
	ExchangeID string `db:"exchange_id"`
	VariantID  string `db:"variant_id"`
}

type linkedFeeRow struct {
	OwnerID string `db:"owner_id"`
	enterpriseFeeRow
}

func (r *orderCycleRepository) Get(ctx context.Context, id string) (*ordercycle.OrderCycle, error) {
	q := r.db.GetQuerier(ctx)

	var oc ordercycle.OrderCycle
	query := `SELECT id, tenant_id, name, coordinator_id FROM order_cycles WHERE id = $1 AND tenant_id = $2`
	if err := q.GetContext(ctx, &oc, query, id, types.GetTenantID(ctx)); err != nil {
		return nil, postgres.TranslateError(err, "order_cycle", id)
	}

	var exchanges []*ordercycle.Exchange
	exchangesQuery := `
		SELECT id, order_cycle_id, sender_id, receiver_id, incoming
		FROM exchanges WHERE order_cycle_id = $1 ORDER BY incoming DESC, id`
	if err := q.SelectContext(ctx, &exchanges, exchangesQuery, id); err != nil {
		return nil, postgres.TranslateError(err, "order_cycle", id)
	}
	oc.Exchanges = exchanges

	exchangeIDs := lo.Map(exchanges, func(e *ordercycle.Exchange, _ int) string { return e.ID })
	byID := lo.KeyBy(exchanges, func(e *ordercycle.Exchange) string { return e.ID })

	if len(exchangeIDs) > 0 {
		var variants []exchangeVariantRow
		variantsQuery := `
			SELECT exchange_id, variant_id FROM exchange_variants
			WHERE exchange_id = ANY($1) ORDER BY variant_id`
		if err := q.SelectContext(ctx, &variants, variantsQuery, pq.Array(exchangeIDs)); err != nil {
			return nil, postgres.TranslateError(err, "order_cycle", id)
		}
		for _, v := range variants {
			byID[v.ExchangeID].VariantIDs = append(byID[v.ExchangeID].VariantIDs, v.VariantID)
		}

		var exchangeFees []linkedFeeRow
		exchangeFeesQuery := `
			SELECT x.exchange_id AS owner_id, fees.* FROM exchange_fees x
			JOIN (` + enterpriseFeeSelect + `) fees ON fees.id = x.enterprise_fee_id
			WHERE x.exchange_id = ANY($1) AND fees.status = $2
			ORDER BY fees.created_at, fees.id`
		err := q.SelectContext(ctx, &exchangeFees, exchangeFeesQuery, pq.Array(exchangeIDs), types.StatusPublished)
		if err != nil {
			return nil, postgres.TranslateError(err, "order_cycle", id)
		}
		for _, row := range exchangeFees {
			byID[row.OwnerID].EnterpriseFees = append(byID[row.OwnerID].EnterpriseFees, row.toDomain())
		}
	}

	var coordinatorFees []linkedFeeRow
	coordinatorFeesQuery := `
		SELECT c.order_cycle_id AS owner_id, fees.* FROM order_cycle_coordinator_fees c
		JOIN (` + enterpriseFeeSelect + `) fees ON fees.id = c.enterprise_fee_id
		WHERE c.order_cycle_id = $1 AND fees.status = $2
		ORDER BY fees.created_at, fees.id`
	if err := q.SelectContext(ctx, &coordinatorFees, coordinatorFeesQuery, id, types.StatusPublished); err != nil {
		return nil, postgres.TranslateError(err, "order_cycle", id)
	}
	oc.CoordinatorFees = lo.Map(coordinatorFees, func(row linkedFeeRow, _ int) *enterprisefee.EnterpriseFee {
		return row.toDomain()
	})

	return &oc, nil
}

func (r *orderCycleRepository) ListIDsByEnterpriseFee(ctx context.Context, feeID string) ([]string, error) {
	var ids []string
	query := `
		SELECT DISTINCT oc.id FROM order_cycles oc
		LEFT JOIN order_cycle_coordinator_fees c ON c.order_cycle_id = oc.id
		LEFT JOIN exchanges x ON x.order_cycle_id = oc.id
		LEFT JOIN exchange_fees xf ON xf.exchange_id = x.id
		WHERE oc.tenant_id = $1
		AND (c.enterprise_fee_id = $2 OR xf.enterprise_fee_id = $2)
		ORDER BY oc.id`

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &ids, query, types.GetTenantID(ctx), feeID); err != nil {
		return nil, postgres.TranslateError(err, "enterprise_fee", feeID)
	}
	return ids, nil
}
