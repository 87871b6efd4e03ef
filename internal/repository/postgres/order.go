package postgres

import (
	"context"
	"time"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/order"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, tenant_id, number, distributor_id, order_cycle_id, state, currency, tax_zone_id,
	item_total, shipment_total, adjustment_total, additional_tax_total, included_tax_total, total,
	created_at, updated_at`

type orderRepository struct {
	db          *postgres.DB
	adjustments adjustment.Repository
	logger      *logger.Logger
}

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return &orderRepository{
		db:          db,
		adjustments: NewAdjustmentRepository(db, logger),
		logger:      logger,
	}
}

// lineItemRow flattens a line item with its variant and product
type lineItemRow struct {
	ID                string           `db:"id"`
	OrderID           string           `db:"order_id"`
	VariantID         string           `db:"variant_id"`
	Quantity          int              `db:"quantity"`
	Price             decimal.Decimal  `db:"price"`
	FinalWeightVolume *decimal.Decimal `db:"final_weight_volume"`
	CreatedAt         time.Time        `db:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at"`

	ProductID     string            `db:"product_id"`
	SupplierID    string            `db:"supplier_id"`
	UnitValue     decimal.Decimal   `db:"unit_value"`
	VariantUnit   types.VariantUnit `db:"variant_unit"`
	Weight        decimal.Decimal   `db:"weight"`
	ProductName   string            `db:"product_name"`
	TaxCategoryID string            `db:"tax_category_id"`
}

func (row lineItemRow) toDomain() *order.LineItem {
	return &order.LineItem{
		ID:                row.ID,
		OrderID:           row.OrderID,
		VariantID:         row.VariantID,
		Quantity:          row.Quantity,
		Price:             row.Price,
		FinalWeightVolume: row.FinalWeightVolume,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
		Variant: &order.Variant{
			ID:          row.VariantID,
			ProductID:   row.ProductID,
			SupplierID:  row.SupplierID,
			UnitValue:   row.UnitValue,
			VariantUnit: row.VariantUnit,
			Weight:      row.Weight,
			Product: &order.Product{
				ID:            row.ProductID,
				Name:          row.ProductName,
				TaxCategoryID: row.TaxCategoryID,
			},
		},
	}
}

func (r *orderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND tenant_id = $2`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &o, query, id, types.GetTenantID(ctx)); err != nil {
		return nil, postgres.TranslateError(err, "order", id)
	}

	if err := r.load(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByLineItemID(ctx context.Context, lineItemID string) (*order.Order, error) {
	var orderID string
	query := `
		SELECT o.id FROM orders o
		JOIN line_items li ON li.order_id = o.id
		WHERE li.id = $1 AND o.tenant_id = $2`

	if err := r.db.GetQuerier(ctx).GetContext(ctx, &orderID, query, lineItemID, types.GetTenantID(ctx)); err != nil {
		return nil, postgres.TranslateError(err, "line_item", lineItemID)
	}
	return r.Get(ctx, orderID)
}

// List returns order headers only. Callers load the aggregate with Get under the order lock.
func (r *orderRepository) List(ctx context.Context, filter *types.OrderFilter) ([]*order.Order, error) {
	if filter == nil {
		filter = &types.OrderFilter{}
	}

	where := tenantConditions(ctx, "tenant_id")
	if len(filter.OrderIDs) > 0 {
		where.add("id = ANY(?)", pq.Array(filter.OrderIDs))
	}
	if len(filter.OrderCycleIDs) > 0 {
		where.add("order_cycle_id = ANY(?)", pq.Array(filter.OrderCycleIDs))
	}
	if filter.DistributorID != "" {
		where.add("distributor_id = ?", filter.DistributorID)
	}
	if len(filter.States) > 0 {
		where.add("state = ANY(?)", pq.Array(lo.Map(filter.States, func(s types.OrderState, _ int) string {
			return string(s)
		})))
	}
	if filter.ExcludeCompleted {
		where.add("NOT (state = ANY(?))", pq.Array([]string{
			string(types.OrderStateComplete),
			string(types.OrderStateCanceled),
			string(types.OrderStateAwaitingReturn),
			string(types.OrderStateReturned),
		}))
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where.where() + ` ORDER BY created_at, id`
	if filter.Limit > 0 {
		query += ` LIMIT ` + where.placeholder(filter.Limit)
	}

	var orders []*order.Order
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &orders, query, where.args...); err != nil {
		return nil, postgres.TranslateError(err, "order", "")
	}

	r.logger.Debugw("listed orders",
		"count", len(orders),
		"order_cycle_ids", filter.OrderCycleIDs,
	)
	return orders, nil
}

func (r *orderRepository) UpdateTotals(ctx context.Context, o *order.Order) error {
	o.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE orders SET
			item_total = :item_total,
			shipment_total = :shipment_total,
			adjustment_total = :adjustment_total,
			additional_tax_total = :additional_tax_total,
			included_tax_total = :included_tax_total,
			total = :total,
			updated_at = :updated_at
		WHERE id = :id
		AND tenant_id = :tenant_id`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, o)
	if err != nil {
		return postgres.TranslateError(err, "order", o.ID)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return postgres.TranslateError(err, "order", o.ID)
	}
	if rows == 0 {
		return ierr.NewError("order not found").
			WithHintf("Order %s was not found", o.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// load fills line items, shipments and adjustments of an order header
func (r *orderRepository) load(ctx context.Context, o *order.Order) error {
	q := r.db.GetQuerier(ctx)

	var rows []lineItemRow
	lineItemsQuery := `
		SELECT li.id, li.order_id, li.variant_id, li.quantity, li.price, li.final_weight_volume,
			li.created_at, li.updated_at,
			v.product_id, v.supplier_id, v.unit_value, v.variant_unit, v.weight,
			p.name AS product_name, p.tax_category_id
		FROM line_items li
		JOIN variants v ON v.id = li.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE li.order_id = $1
		ORDER BY li.created_at, li.id`
	if err := q.SelectContext(ctx, &rows, lineItemsQuery, o.ID); err != nil {
		return postgres.TranslateError(err, "order", o.ID)
	}
	o.LineItems = lo.Map(rows, func(row lineItemRow, _ int) *order.LineItem {
		return row.toDomain()
	})

	var shipments []*order.Shipment
	shipmentsQuery := `SELECT id, order_id, cost, tax_category_id FROM shipments WHERE order_id = $1 ORDER BY id`
	if err := q.SelectContext(ctx, &shipments, shipmentsQuery, o.ID); err != nil {
		return postgres.TranslateError(err, "order", o.ID)
	}
	o.Shipments = shipments

	adjustments, err := r.adjustments.List(ctx, &types.AdjustmentFilter{OrderID: o.ID})
	if err != nil {
		return err
	}
	for _, a := range adjustments {
		o.AttachAdjustment(a)
	}
	return nil
}
