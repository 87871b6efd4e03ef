package calculator

import (
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// grams per charged unit
var weightUnitDivisors = map[types.WeightUnit]decimal.Decimal{
	types.WeightUnitKilogram: decimal.NewFromInt(1000),
	types.WeightUnitPound:    decimal.RequireFromString("453.59237"),
}

// kilograms per charged unit, for shipping weights recorded in kg
var kilogramsPerUnit = map[types.WeightUnit]decimal.Decimal{
	types.WeightUnitKilogram: decimal.NewFromInt(1),
	types.WeightUnitPound:    decimal.RequireFromString("0.45359237"),
}

// weight charges PerUnit for every unit of weight sold
func weight(items []Item, p Preferences) (decimal.Decimal, error) {
	unit := p.Unit
	if unit == "" {
		unit = types.WeightUnitKilogram
	}
	divisor, ok := weightUnitDivisors[unit]
	if !ok {
		return decimal.Zero, ierr.NewErrorf("unrecognized weight unit %q", string(p.Unit)).
			WithHint("Weight calculators support kg and lb only").
			WithReportableDetails(map[string]any{"unit": p.Unit}).
			Mark(ierr.ErrConfiguration)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(itemWeight(item, divisor, kilogramsPerUnit[unit]))
	}

	return types.RoundMoney(total.Mul(p.PerUnit)), nil
}

// itemWeight prefers the recorded final weight/volume, falling back to unit value times quantity
func itemWeight(item Item, gramsPerUnit, kgPerUnit decimal.Decimal) decimal.Decimal {
	if item.FinalWeightVolume != nil {
		if item.VariantUnit == types.VariantUnitWeight {
			return item.FinalWeightVolume.Div(gramsPerUnit)
		}
		return perVariantWeight(item, gramsPerUnit, kgPerUnit).Mul(quantityImpliedByFinalWeightVolume(item))
	}
	return perVariantWeight(item, gramsPerUnit, kgPerUnit).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func perVariantWeight(item Item, gramsPerUnit, kgPerUnit decimal.Decimal) decimal.Decimal {
	if item.VariantUnit == types.VariantUnitWeight {
		return item.UnitValue.Div(gramsPerUnit)
	}
	return item.Weight.Div(kgPerUnit)
}

// quantityImpliedByFinalWeightVolume is how many nominal units the recorded amount represents,
// e.g. a 150ml glass out of a 750ml bottle is 0.2. A zero unit value falls back to the raw quantity.
func quantityImpliedByFinalWeightVolume(item Item) decimal.Decimal {
	if item.UnitValue.IsZero() {
		return decimal.NewFromInt(int64(item.Quantity))
	}
	return item.FinalWeightVolume.DivRound(item.UnitValue, 3)
}
