package types

import (
	"slices"

	ierr "github.com/harvestlane/backoffice/internal/errors"
)

// CalculatorType is the closed set of pricing formulas a fee or tax rate can use
type CalculatorType string

const (
	CalculatorTypeFlatRate             CalculatorType = "flat_rate"
	CalculatorTypePerItem              CalculatorType = "per_item"
	CalculatorTypeFlatPercentItemTotal CalculatorType = "flat_percent_item_total"
	CalculatorTypeFlatPercentPerItem   CalculatorType = "flat_percent_per_item"
	CalculatorTypeFlexiRate            CalculatorType = "flexi_rate"
	CalculatorTypePriceSack            CalculatorType = "price_sack"
	CalculatorTypeWeight               CalculatorType = "weight"
	CalculatorTypeNone                 CalculatorType = "none"
	CalculatorTypeDefaultTax           CalculatorType = "default_tax"
)

// PerOrderCalculatorTypes are the kinds that charge once per order instead of once per line item
var PerOrderCalculatorTypes = []CalculatorType{
	CalculatorTypeFlatRate,
	CalculatorTypeFlexiRate,
	CalculatorTypePriceSack,
}

func (t CalculatorType) String() string {
	return string(t)
}

// IsPerOrder reports whether a fee using this calculator applies to the whole order
func (t CalculatorType) IsPerOrder() bool {
	return slices.Contains(PerOrderCalculatorTypes, t)
}

func (t CalculatorType) Validate() error {
	allowed := []CalculatorType{
		CalculatorTypeFlatRate,
		CalculatorTypePerItem,
		CalculatorTypeFlatPercentItemTotal,
		CalculatorTypeFlatPercentPerItem,
		CalculatorTypeFlexiRate,
		CalculatorTypePriceSack,
		CalculatorTypeWeight,
		CalculatorTypeNone,
		CalculatorTypeDefaultTax,
	}
	if !slices.Contains(allowed, t) {
		return ierr.NewError("invalid calculator type").
			WithHintf("Calculator type %q is not supported", string(t)).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}

// WeightUnit is the unit a weight calculator charges per
type WeightUnit string

const (
	WeightUnitKilogram WeightUnit = "kg"
	WeightUnitPound    WeightUnit = "lb"
)

// VariantUnit is how a variant's unit value is measured
type VariantUnit string

const (
	VariantUnitWeight VariantUnit = "weight"
	VariantUnitVolume VariantUnit = "volume"
	VariantUnitItems  VariantUnit = "items"
)
