package dto

import (
	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// OrderFeesResponse is the fee and tax state of an order after a synchronization pass
type OrderFeesResponse struct {
	OrderID            string                   `json:"order_id"`
	State              types.OrderState         `json:"state"`
	ItemTotal          decimal.Decimal          `json:"item_total"`
	ShipmentTotal      decimal.Decimal          `json:"shipment_total"`
	AdjustmentTotal    decimal.Decimal          `json:"adjustment_total"`
	AdditionalTaxTotal decimal.Decimal          `json:"additional_tax_total"`
	IncludedTaxTotal   decimal.Decimal          `json:"included_tax_total"`
	Total              decimal.Decimal          `json:"total"`
	Adjustments        []*adjustment.Adjustment `json:"adjustments"`
	Created            int                      `json:"created"`
	Updated            int                      `json:"updated"`
	Removed            int                      `json:"removed"`
}

func NewOrderFeesResponse(o *order.Order, created, updated, removed int) *OrderFeesResponse {
	return &OrderFeesResponse{
		OrderID:            o.ID,
		State:              o.State,
		ItemTotal:          o.ItemTotal,
		ShipmentTotal:      o.ShipmentTotal,
		AdjustmentTotal:    o.AdjustmentTotal,
		AdditionalTaxTotal: o.AdditionalTaxTotal,
		IncludedTaxTotal:   o.IncludedTaxTotal,
		Total:              o.Total,
		Adjustments:        o.AllAdjustments(),
		Created:            created,
		Updated:            updated,
		Removed:            removed,
	}
}
