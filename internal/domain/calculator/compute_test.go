package calculator

import (
	"testing"

	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// items prices a plain slice, the way a single line item or a whole order would be priced
type items []Item

func (i items) CalculableItems() []Item { return i }

func (i items) TaxableAmount() decimal.Decimal { return totalAmount(i) }

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestCompute(t *testing.T) {
	threeAtTen := items{{Quantity: 3, Price: d("10.00")}}
	threeAtOddPrice := items{{Quantity: 3, Price: d("3.33")}}

	tests := []struct {
		name    string
		calc    Calculator
		subject Computable
		want    string
	}{
		{
			name:    "flat rate ignores the items",
			calc:    Calculator{Type: types.CalculatorTypeFlatRate, Preferences: Preferences{Amount: d("5.00")}},
			subject: threeAtTen,
			want:    "5.00",
		},
		{
			name:    "per item multiplies by total quantity",
			calc:    Calculator{Type: types.CalculatorTypePerItem, Preferences: Preferences{Amount: d("0.50")}},
			subject: items{{Quantity: 3, Price: d("1")}, {Quantity: 2, Price: d("4")}},
			want:    "2.50",
		},
		{
			name:    "flat percent per item rounds each unit then multiplies",
			calc:    Calculator{Type: types.CalculatorTypeFlatPercentPerItem, Preferences: Preferences{Percent: d("10")}},
			subject: threeAtTen,
			want:    "3.00",
		},
		{
			name:    "flat percent per item on an odd price",
			calc:    Calculator{Type: types.CalculatorTypeFlatPercentPerItem, Preferences: Preferences{Percent: d("10")}},
			subject: threeAtOddPrice,
			want:    "0.99",
		},
		{
			name:    "flat percent item total rounds the summed percentage once",
			calc:    Calculator{Type: types.CalculatorTypeFlatPercentItemTotal, Preferences: Preferences{Percent: d("10")}},
			subject: threeAtOddPrice,
			want:    "1.00",
		},
		{
			name: "flexi rate caps the additional items",
			calc: Calculator{Type: types.CalculatorTypeFlexiRate, Preferences: Preferences{
				FirstItem: d("2.00"), AdditionalItem: d("0.50"), MaxItems: 2,
			}},
			subject: threeAtTen,
			want:    "2.50",
		},
		{
			name: "flexi rate with a single item charges the first item only",
			calc: Calculator{Type: types.CalculatorTypeFlexiRate, Preferences: Preferences{
				FirstItem: d("2.00"), AdditionalItem: d("0.50"), MaxItems: 5,
			}},
			subject: items{{Quantity: 1, Price: d("10.00")}},
			want:    "2.00",
		},
		{
			name: "flexi rate with zero max items is disabled",
			calc: Calculator{Type: types.CalculatorTypeFlexiRate, Preferences: Preferences{
				FirstItem: d("2.00"), AdditionalItem: d("0.50"), MaxItems: 0,
			}},
			subject: threeAtTen,
			want:    "0",
		},
		{
			name: "flexi rate on an empty order",
			calc: Calculator{Type: types.CalculatorTypeFlexiRate, Preferences: Preferences{
				FirstItem: d("2.00"), MaxItems: 3,
			}},
			subject: items{},
			want:    "0",
		},
		{
			name: "price sack below the minimal amount charges the normal amount",
			calc: Calculator{Type: types.CalculatorTypePriceSack, Preferences: Preferences{
				MinimalAmount: d("50"), NormalAmount: d("5"), DiscountAmount: d("2"),
			}},
			subject: threeAtTen,
			want:    "5",
		},
		{
			name: "price sack at the minimal amount charges the discount amount",
			calc: Calculator{Type: types.CalculatorTypePriceSack, Preferences: Preferences{
				MinimalAmount: d("30"), NormalAmount: d("5"), DiscountAmount: d("2"),
			}},
			subject: threeAtTen,
			want:    "2",
		},
		{
			name:    "none charges nothing",
			calc:    Calculator{Type: types.CalculatorTypeNone},
			subject: threeAtTen,
			want:    "0",
		},
		{
			name:    "default tax on top of the price",
			calc:    Calculator{Type: types.CalculatorTypeDefaultTax, Preferences: Preferences{TaxRateID: "tr_gst", TaxRate: d("0.1")}},
			subject: threeAtTen,
			want:    "3.00",
		},
		{
			name:    "default tax included in the price is deduced",
			calc:    Calculator{Type: types.CalculatorTypeDefaultTax, Preferences: Preferences{TaxRateID: "tr_gst", TaxRate: d("0.1"), IncludedInPrice: true}},
			subject: items{{Quantity: 1, Price: d("110.00")}},
			want:    "10.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.calc.Compute(tt.subject)
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestComputeErrors(t *testing.T) {
	t.Run("nil subject", func(t *testing.T) {
		_, err := Calculator{Type: types.CalculatorTypeFlatRate}.Compute(nil)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("unknown calculator type", func(t *testing.T) {
		_, err := Calculator{Type: "bulk_discount"}.Compute(items{{Quantity: 1, Price: d("1")}})
		require.Error(t, err)
		assert.True(t, ierr.IsConfiguration(err))
	})

	t.Run("default tax without a tax rate", func(t *testing.T) {
		calc := Calculator{Type: types.CalculatorTypeDefaultTax, Preferences: Preferences{TaxRate: d("0.1")}}
		got, err := calc.Compute(items{{Quantity: 1, Price: d("10")}})
		require.Error(t, err)
		assert.True(t, ierr.IsConfiguration(err))
		assert.True(t, got.IsZero())
	})
}

func TestComputeWeight(t *testing.T) {
	tests := []struct {
		name  string
		prefs Preferences
		item  Item
		want  string
	}{
		{
			name:  "weight variant in kilograms",
			prefs: Preferences{PerUnit: d("2"), Unit: types.WeightUnitKilogram},
			item:  Item{Quantity: 3, Price: d("4"), UnitValue: d("500"), VariantUnit: types.VariantUnitWeight},
			want:  "3.00",
		},
		{
			name:  "unit defaults to kilograms",
			prefs: Preferences{PerUnit: d("2")},
			item:  Item{Quantity: 1, Price: d("4"), UnitValue: d("250"), VariantUnit: types.VariantUnitWeight},
			want:  "0.50",
		},
		{
			name:  "weight variant in pounds",
			prefs: Preferences{PerUnit: d("1"), Unit: types.WeightUnitPound},
			item:  Item{Quantity: 2, Price: d("4"), UnitValue: d("453.59237"), VariantUnit: types.VariantUnitWeight},
			want:  "2.00",
		},
		{
			name:  "item variant uses its shipping weight",
			prefs: Preferences{PerUnit: d("3"), Unit: types.WeightUnitKilogram},
			item:  Item{Quantity: 4, Price: d("1"), Weight: d("0.25"), VariantUnit: types.VariantUnitItems},
			want:  "3.00",
		},
		{
			name:  "recorded final weight replaces nominal weight",
			prefs: Preferences{PerUnit: d("2"), Unit: types.WeightUnitKilogram},
			item: Item{
				Quantity: 3, Price: d("4"), UnitValue: d("500"), VariantUnit: types.VariantUnitWeight,
				FinalWeightVolume: lo.ToPtr(d("1200")),
			},
			want: "2.40",
		},
		{
			name:  "recorded volume implies a fraction of the nominal unit",
			prefs: Preferences{PerUnit: d("10"), Unit: types.WeightUnitKilogram},
			item: Item{
				Quantity: 1, Price: d("20"), UnitValue: d("750"), VariantUnit: types.VariantUnitVolume,
				Weight: d("1.2"), FinalWeightVolume: lo.ToPtr(d("150")),
			},
			want: "2.40",
		},
		{
			name:  "recorded volume without a unit value charges the full quantity",
			prefs: Preferences{PerUnit: d("3"), Unit: types.WeightUnitKilogram},
			item: Item{
				Quantity: 2, Price: d("5"), VariantUnit: types.VariantUnitVolume,
				Weight: d("0.5"), FinalWeightVolume: lo.ToPtr(d("150")),
			},
			want: "3.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := Calculator{Type: types.CalculatorTypeWeight, Preferences: tt.prefs}
			got, err := calc.Compute(items{tt.item})
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}

	t.Run("unrecognized unit", func(t *testing.T) {
		calc := Calculator{Type: types.CalculatorTypeWeight, Preferences: Preferences{PerUnit: d("1"), Unit: "oz"}}
		_, err := calc.Compute(items{{Quantity: 1, UnitValue: d("100"), VariantUnit: types.VariantUnitWeight}})
		require.Error(t, err)
		assert.True(t, ierr.IsConfiguration(err))
		assert.True(t, ierr.IsConfiguration(calc.Validate()))
	})
}

func TestTaxOn(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		rate     string
		included bool
		want     string
	}{
		{name: "fee of one at ten percent", amount: "1.00", rate: "0.1", want: "0.10"},
		{name: "rounds half up once", amount: "0.05", rate: "0.1", want: "0.01"},
		{name: "zero rate", amount: "12.34", rate: "0", want: "0"},
		{name: "zero amount", amount: "0", rate: "0.2", want: "0"},
		{name: "included", amount: "12.00", rate: "0.2", included: true, want: "2.00"},
		{name: "included with a remainder", amount: "10.00", rate: "0.15", included: true, want: "1.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, TaxOn(d(tt.amount), d(tt.rate), tt.included))
		})
	}
}

// Summing unrounded bases before taxing differs from taxing each part
func TestTaxOnRoundsTheSumNotTheParts(t *testing.T) {
	parts := []decimal.Decimal{d("0.05"), d("0.05"), d("0.05")}
	rate := d("0.1")

	var base, perPart decimal.Decimal
	for _, p := range parts {
		base = base.Add(p)
		perPart = perPart.Add(TaxOn(p, rate, false))
	}

	assertDecimal(t, "0.02", TaxOn(base, rate, false))
	assertDecimal(t, "0.03", perPart)
	assert.True(t, TaxOn(base, rate, false).Equal(types.RoundMoney(base.Mul(rate))))
}

func TestIsPerOrder(t *testing.T) {
	for _, typ := range []types.CalculatorType{
		types.CalculatorTypeFlatRate,
		types.CalculatorTypeFlexiRate,
		types.CalculatorTypePriceSack,
	} {
		assert.True(t, New(typ, Preferences{}).IsPerOrder(), typ)
	}
	for _, typ := range []types.CalculatorType{
		types.CalculatorTypePerItem,
		types.CalculatorTypeFlatPercentItemTotal,
		types.CalculatorTypeFlatPercentPerItem,
		types.CalculatorTypeWeight,
	} {
		assert.False(t, New(typ, Preferences{}).IsPerOrder(), typ)
	}
}
