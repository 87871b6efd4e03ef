package calculator

import (
	"testing"

	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreferences(t *testing.T) {
	t.Run("numeric and blank fields", func(t *testing.T) {
		prefs, err := ParsePreferences(RawPreferences{
			FirstItem:      "2.00",
			AdditionalItem: " 0.5 ",
			MaxItems:       "3",
			Amount:         "",
			Currency:       "AUD",
		})
		require.NoError(t, err)

		assertDecimal(t, "2.00", prefs.FirstItem)
		assertDecimal(t, "0.5", prefs.AdditionalItem)
		assertDecimal(t, "0", prefs.Amount)
		assert.Equal(t, 3, prefs.MaxItems)
		assert.Equal(t, "aud", prefs.Currency)
	})

	t.Run("weight unit", func(t *testing.T) {
		prefs, err := ParsePreferences(RawPreferences{PerUnit: "1.5", Unit: "lb"})
		require.NoError(t, err)
		assert.Equal(t, types.WeightUnitPound, prefs.Unit)
	})

	tests := []struct {
		name string
		raw  RawPreferences
	}{
		{name: "non numeric amount", raw: RawPreferences{Amount: "ten"}},
		{name: "non numeric percent", raw: RawPreferences{Percent: "10%"}},
		{name: "fractional max items", raw: RawPreferences{MaxItems: "2.5"}},
		{name: "unsupported unit", raw: RawPreferences{PerUnit: "1", Unit: "oz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePreferences(tt.raw)
			require.Error(t, err)
			assert.True(t, ierr.IsConfiguration(err))
		})
	}
}

func TestCalculatorValidate(t *testing.T) {
	assert.NoError(t, New(types.CalculatorTypeFlexiRate, Preferences{MaxItems: 0}).Validate())
	assert.True(t, ierr.IsConfiguration(New(types.CalculatorTypeFlexiRate, Preferences{MaxItems: -1}).Validate()))
	assert.True(t, ierr.IsConfiguration(New(types.CalculatorTypeDefaultTax, Preferences{TaxRate: d("-0.1")}).Validate()))
	assert.True(t, ierr.IsConfiguration(New("bulk_discount", Preferences{}).Validate()))
}
