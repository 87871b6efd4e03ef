package types

import (
	"github.com/shopspring/decimal"
)

// DefaultMoneyPrecision is the number of decimal places persisted money is rounded to
const DefaultMoneyPrecision int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds half away from zero to two places,
// which is half-up for the non-negative amounts fees and taxes produce.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(DefaultMoneyPrecision)
}

// PercentOf returns amount * percent / 100 without rounding
func PercentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

// SumDecimals adds the given amounts
func SumDecimals(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
