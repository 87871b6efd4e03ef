package calculator

import (
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Compute prices the subject with this calculator's formula
func (c Calculator) Compute(subject Computable) (decimal.Decimal, error) {
	if subject == nil {
		return decimal.Zero, ierr.NewError("calculator subject is nil").
			WithHint("A line item, order or shipment is required to compute an amount").
			Mark(ierr.ErrValidation)
	}

	p := c.Preferences
	items := subject.CalculableItems()

	switch c.Type {
	case types.CalculatorTypeFlatRate:
		return p.Amount, nil

	case types.CalculatorTypePerItem:
		return p.Amount.Mul(decimal.NewFromInt(int64(totalQuantity(items)))), nil

	case types.CalculatorTypeFlatPercentItemTotal:
		return types.RoundMoney(types.PercentOf(totalAmount(items), p.Percent)), nil

	case types.CalculatorTypeFlatPercentPerItem:
		return flatPercentPerItem(items, p.Percent), nil

	case types.CalculatorTypeFlexiRate:
		return flexiRate(totalQuantity(items), p), nil

	case types.CalculatorTypePriceSack:
		if totalAmount(items).LessThan(p.MinimalAmount) {
			return p.NormalAmount, nil
		}
		return p.DiscountAmount, nil

	case types.CalculatorTypeWeight:
		return weight(items, p)

	case types.CalculatorTypeNone:
		return decimal.Zero, nil

	case types.CalculatorTypeDefaultTax:
		if p.TaxRateID == "" {
			return decimal.Zero, ierr.NewError("default tax calculator has no tax rate").
				WithHint("Tax is computed from a configured tax rate").
				WithReportableDetails(map[string]any{"calculator_id": c.ID}).
				Mark(ierr.ErrConfiguration)
		}
		return TaxOn(subject.TaxableAmount(), p.TaxRate, p.IncludedInPrice), nil

	default:
		return decimal.Zero, ierr.NewErrorf("unknown calculator type %q", c.Type).
			WithHint("The fee uses a calculator that no longer exists").
			WithReportableDetails(map[string]any{"calculator_type": c.Type}).
			Mark(ierr.ErrConfiguration)
	}
}

// flatPercentPerItem rounds the percentage of each unit price before multiplying by the
// quantity, so the result matches the per-unit fee shown to the customer line by line.
// It is not the same as taking the percentage of the summed total.
func flatPercentPerItem(items []Item, percent decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		perUnit := types.RoundMoney(types.PercentOf(item.Price, percent))
		total = total.Add(perUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// flexiRate charges the first item, then the additional charge for every further item up to MaxItems.
// A zero MaxItems disables the fee.
func flexiRate(quantity int, p Preferences) decimal.Decimal {
	if p.MaxItems <= 0 || quantity <= 0 {
		return decimal.Zero
	}

	counted := min(quantity, p.MaxItems)
	return p.FirstItem.Add(p.AdditionalItem.Mul(decimal.NewFromInt(int64(counted - 1))))
}

// TaxOn computes tax on amount at rate. When the rate is included in the price the
// pre-tax amount is deduced first. Rounding happens once, on the final figure.
func TaxOn(amount, rate decimal.Decimal, includedInPrice bool) decimal.Decimal {
	if amount.IsZero() || rate.IsZero() {
		return decimal.Zero
	}
	if includedInPrice {
		preTax := amount.DivRound(one.Add(rate), 16)
		return types.RoundMoney(amount.Sub(preTax))
	}
	return types.RoundMoney(amount.Mul(rate))
}
