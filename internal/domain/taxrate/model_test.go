package taxrate

import (
	"context"
	"testing"

	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorIsBoundToTheRate(t *testing.T) {
	rate := New(context.Background(), "GST", decimal.RequireFromString("0.1"), "txc_food", true)

	calc := rate.Calculator()
	assert.Equal(t, types.CalculatorTypeDefaultTax, calc.Type)
	assert.Equal(t, rate.ID, calc.Preferences.TaxRateID)
	assert.True(t, calc.Preferences.IncludedInPrice)
	assert.Equal(t, "GST 10% (included in price)", rate.Label())

	require.NotEmpty(t, calc.Preferences.TaxRateID)
}
