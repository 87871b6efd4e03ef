package calculator

import (
	"database/sql/driver"
	"encoding/json"

	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// Calculator is a pricing formula plus the preferences it was configured with.
// The set of kinds is closed; see types.CalculatorType.
type Calculator struct {
	ID          string               `db:"calculator_id" json:"id"`
	Type        types.CalculatorType `db:"calculator_type" json:"type"`
	Preferences Preferences          `db:"calculator_preferences" json:"preferences"`
}

// Preferences holds every knob any calculator kind reads. Each kind only looks at its own fields.
type Preferences struct {
	// flat_rate, per_item
	Amount decimal.Decimal `json:"amount"`
	// flat_percent_item_total, flat_percent_per_item
	Percent decimal.Decimal `json:"percent"`
	// flexi_rate
	FirstItem      decimal.Decimal `json:"first_item"`
	AdditionalItem decimal.Decimal `json:"additional_item"`
	MaxItems       int             `json:"max_items"`
	// price_sack
	MinimalAmount  decimal.Decimal `json:"minimal_amount"`
	NormalAmount   decimal.Decimal `json:"normal_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	// weight
	PerUnit decimal.Decimal  `json:"per_unit"`
	Unit    types.WeightUnit `json:"unit,omitempty"`
	// default_tax, bound to a tax rate by TaxRateID
	TaxRateID       string          `json:"tax_rate_id,omitempty"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	IncludedInPrice bool            `json:"included_in_price"`

	Currency string `json:"currency,omitempty"`
}

// Value implements driver.Valuer so preferences persist as a jsonb column
func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for the jsonb column
func (p *Preferences) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Preferences{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return ierr.NewErrorf("cannot scan %T into calculator preferences", src).
			Mark(ierr.ErrDatabase)
	}
}

// Item is one priced unit of work a calculator sees: a line item, or one line of an order or shipment.
type Item struct {
	Quantity int
	Price    decimal.Decimal
	// UnitValue is the variant's nominal size in grams (weight) or millilitres (volume)
	UnitValue   decimal.Decimal
	VariantUnit types.VariantUnit
	// Weight is the variant's shipping weight in kilograms, used for non-weight variants
	Weight decimal.Decimal
	// FinalWeightVolume is the recorded weight/volume actually sold, when it differs from nominal
	FinalWeightVolume *decimal.Decimal
}

// Amount is price times quantity
func (i Item) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Computable is anything a calculator can price: a line item, an order or a shipment
type Computable interface {
	// CalculableItems returns the items the formula is applied to
	CalculableItems() []Item
	// TaxableAmount is the amount a simple tax computation applies to
	TaxableAmount() decimal.Decimal
}

// New builds a calculator of the given kind
func New(calculatorType types.CalculatorType, prefs Preferences) Calculator {
	return Calculator{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CALCULATOR),
		Type:        calculatorType,
		Preferences: prefs,
	}
}

// IsPerOrder reports whether the calculator charges once per order
func (c Calculator) IsPerOrder() bool {
	return c.Type.IsPerOrder()
}

func totalQuantity(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func totalAmount(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total
}
