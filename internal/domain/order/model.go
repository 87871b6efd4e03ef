package order

import (
	"time"

	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Order is the aggregate the fee engine works on. Repositories return it fully loaded:
// line items with their variants and products, shipments, and every adjustment.
type Order struct {
	ID            string           `db:"id" json:"id"`
	TenantID      string           `db:"tenant_id" json:"tenant_id"`
	Number        string           `db:"number" json:"number"`
	DistributorID *string          `db:"distributor_id" json:"distributor_id,omitempty"`
	OrderCycleID  *string          `db:"order_cycle_id" json:"order_cycle_id,omitempty"`
	State         types.OrderState `db:"state" json:"state"`
	Currency      string           `db:"currency" json:"currency"`
	TaxZoneID     string           `db:"tax_zone_id" json:"tax_zone_id,omitempty"`

	ItemTotal          decimal.Decimal `db:"item_total" json:"item_total"`
	ShipmentTotal      decimal.Decimal `db:"shipment_total" json:"shipment_total"`
	AdjustmentTotal    decimal.Decimal `db:"adjustment_total" json:"adjustment_total"`
	AdditionalTaxTotal decimal.Decimal `db:"additional_tax_total" json:"additional_tax_total"`
	IncludedTaxTotal   decimal.Decimal `db:"included_tax_total" json:"included_tax_total"`
	Total              decimal.Decimal `db:"total" json:"total"`

	LineItems []*LineItem `db:"-" json:"line_items"`
	Shipments []*Shipment `db:"-" json:"shipments,omitempty"`
	// Adjustments whose adjustable is the order itself
	Adjustments []*adjustment.Adjustment `db:"-" json:"adjustments"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is one variant at one price and quantity within an order
type LineItem struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	VariantID string          `db:"variant_id" json:"variant_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	// FinalWeightVolume is the weight or volume actually sold when it differs from nominal
	FinalWeightVolume *decimal.Decimal `db:"final_weight_volume" json:"final_weight_volume,omitempty"`

	Variant     *Variant                 `db:"-" json:"variant"`
	Adjustments []*adjustment.Adjustment `db:"-" json:"adjustments"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Variant is a sellable unit of a product
type Variant struct {
	ID          string            `db:"id" json:"id"`
	ProductID   string            `db:"product_id" json:"product_id"`
	SupplierID  string            `db:"supplier_id" json:"supplier_id"`
	UnitValue   decimal.Decimal   `db:"unit_value" json:"unit_value"`
	VariantUnit types.VariantUnit `db:"variant_unit" json:"variant_unit"`
	Weight      decimal.Decimal   `db:"weight" json:"weight"`
	Product     *Product          `db:"-" json:"product"`
}

// Product carries the tax category its variants are taxed under
type Product struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	TaxCategoryID string `db:"tax_category_id" json:"tax_category_id,omitempty"`
}

// Shipment is a delivery of an order. Its cost is an input to the engine, not computed here.
type Shipment struct {
	ID            string                   `db:"id" json:"id"`
	OrderID       string                   `db:"order_id" json:"order_id"`
	Cost          decimal.Decimal          `db:"cost" json:"cost"`
	TaxCategoryID string                   `db:"tax_category_id" json:"tax_category_id,omitempty"`
	Adjustments   []*adjustment.Adjustment `db:"-" json:"adjustments,omitempty"`
}

var (
	_ calculator.Computable = (*Order)(nil)
	_ calculator.Computable = (*LineItem)(nil)
	_ calculator.Computable = (*Shipment)(nil)
)

// HasDistribution reports whether the order is placed with a distributor in an order cycle
func (o *Order) HasDistribution() bool {
	return lo.FromPtr(o.DistributorID) != "" && lo.FromPtr(o.OrderCycleID) != ""
}

// CalculableItems implements calculator.Computable
func (o *Order) CalculableItems() []calculator.Item {
	return lo.Map(o.LineItems, func(li *LineItem, _ int) calculator.Item {
		return li.item()
	})
}

// TaxableAmount implements calculator.Computable
func (o *Order) TaxableAmount() decimal.Decimal {
	return o.ComputeItemTotal()
}

// ComputeItemTotal sums price times quantity over all line items
func (o *Order) ComputeItemTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range o.LineItems {
		total = total.Add(li.Amount())
	}
	return total
}

// LineItem finds a line item by id
func (o *Order) LineItem(id string) (*LineItem, bool) {
	return lo.Find(o.LineItems, func(li *LineItem) bool {
		return li.ID == id
	})
}

// AllAdjustments returns order, line item and shipment adjustments together
func (o *Order) AllAdjustments() []*adjustment.Adjustment {
	all := make([]*adjustment.Adjustment, 0, len(o.Adjustments))
	all = append(all, o.Adjustments...)
	for _, li := range o.LineItems {
		all = append(all, li.Adjustments...)
	}
	for _, s := range o.Shipments {
		all = append(all, s.Adjustments...)
	}
	return all
}

// EnterpriseFeeAdjustments returns the order-level fee adjustments
func (o *Order) EnterpriseFeeAdjustments() []*adjustment.Adjustment {
	return lo.Filter(o.Adjustments, func(a *adjustment.Adjustment, _ int) bool {
		return a.IsEnterpriseFee()
	})
}

// AttachAdjustment adds a freshly created adjustment to the collection its adjustable owns
func (o *Order) AttachAdjustment(a *adjustment.Adjustment) {
	switch a.AdjustableType {
	case types.AdjustableTypeLineItem:
		if li, ok := o.LineItem(a.AdjustableID); ok {
			li.Adjustments = append(li.Adjustments, a)
		}
	case types.AdjustableTypeShipment:
		if s, ok := lo.Find(o.Shipments, func(s *Shipment) bool { return s.ID == a.AdjustableID }); ok {
			s.Adjustments = append(s.Adjustments, a)
		}
	default:
		o.Adjustments = append(o.Adjustments, a)
	}
}

// DetachAdjustment removes an adjustment from whichever collection holds it
func (o *Order) DetachAdjustment(a *adjustment.Adjustment) {
	without := func(list []*adjustment.Adjustment) []*adjustment.Adjustment {
		return lo.Reject(list, func(x *adjustment.Adjustment, _ int) bool { return x.ID == a.ID })
	}
	switch a.AdjustableType {
	case types.AdjustableTypeLineItem:
		if li, ok := o.LineItem(a.AdjustableID); ok {
			li.Adjustments = without(li.Adjustments)
		}
	case types.AdjustableTypeShipment:
		for _, s := range o.Shipments {
			if s.ID == a.AdjustableID {
				s.Adjustments = without(s.Adjustments)
			}
		}
	default:
		o.Adjustments = without(o.Adjustments)
	}
}

// Amount is price times quantity
func (li *LineItem) Amount() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// TaxCategoryID is the tax category of the product sold, empty when untaxed
func (li *LineItem) TaxCategoryID() string {
	if li.Variant == nil || li.Variant.Product == nil {
		return ""
	}
	return li.Variant.Product.TaxCategoryID
}

// CalculableItems implements calculator.Computable
func (li *LineItem) CalculableItems() []calculator.Item {
	return []calculator.Item{li.item()}
}

// TaxableAmount implements calculator.Computable
func (li *LineItem) TaxableAmount() decimal.Decimal {
	return li.Amount()
}

// EnterpriseFeeAdjustments returns the fee adjustments attached to the line item
func (li *LineItem) EnterpriseFeeAdjustments() []*adjustment.Adjustment {
	return lo.Filter(li.Adjustments, func(a *adjustment.Adjustment, _ int) bool {
		return a.IsEnterpriseFee()
	})
}

// FeeAdjustment finds the live adjustment for a fee under a role
func (li *LineItem) FeeAdjustment(feeID string, role types.AdjustmentRole) (*adjustment.Adjustment, bool) {
	return lo.Find(li.Adjustments, func(a *adjustment.Adjustment) bool {
		return a.Matches(types.OriginatorTypeEnterpriseFee, feeID, role)
	})
}

func (li *LineItem) item() calculator.Item {
	item := calculator.Item{
		Quantity:          li.Quantity,
		Price:             li.Price,
		FinalWeightVolume: li.FinalWeightVolume,
	}
	if li.Variant != nil {
		item.UnitValue = li.Variant.UnitValue
		item.VariantUnit = li.Variant.VariantUnit
		item.Weight = li.Variant.Weight
	}
	return item
}

// CalculableItems implements calculator.Computable. A shipment is priced as a single unit of its cost.
func (s *Shipment) CalculableItems() []calculator.Item {
	return []calculator.Item{{Quantity: 1, Price: s.Cost}}
}

// TaxableAmount implements calculator.Computable
func (s *Shipment) TaxableAmount() decimal.Decimal {
	return s.Cost
}
