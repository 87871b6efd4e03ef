package taxrate

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/calculator"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
)

// TaxRate taxes everything in one tax category within a zone.
// Amount is a fraction, so 0.1 is ten percent.
type TaxRate struct {
	ID              string          `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	TaxCategoryID   string          `db:"tax_category_id" json:"tax_category_id"`
	ZoneID          string          `db:"zone_id" json:"zone_id,omitempty"`
	IncludedInPrice bool            `db:"included_in_price" json:"included_in_price"`
	types.BaseModel
}

// New returns a published tax rate with a fresh id
func New(ctx context.Context, name string, amount decimal.Decimal, taxCategoryID string, included bool) *TaxRate {
	return &TaxRate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX_RATE),
		Name:            name,
		Amount:          amount,
		TaxCategoryID:   taxCategoryID,
		IncludedInPrice: included,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

// Calculator returns the default tax calculator configured from this rate
func (r *TaxRate) Calculator() calculator.Calculator {
	return calculator.Calculator{
		ID:   r.ID,
		Type: types.CalculatorTypeDefaultTax,
		Preferences: calculator.Preferences{
			TaxRateID:       r.ID,
			TaxRate:         r.Amount,
			IncludedInPrice: r.IncludedInPrice,
		},
	}
}

// Label is the adjustment label shown to customers
func (r *TaxRate) Label() string {
	pct := r.Amount.Mul(decimal.NewFromInt(100)).String()
	if r.IncludedInPrice {
		return r.Name + " " + pct + "% (included in price)"
	}
	return r.Name + " " + pct + "%"
}

func (r *TaxRate) Validate() error {
	if r.TaxCategoryID == "" {
		return ierr.NewError("tax category is required").
			WithHint("A tax rate must apply to a tax category").
			Mark(ierr.ErrValidation)
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("tax rate cannot be negative").
			WithHint("Tax rate must be zero or more").
			WithReportableDetails(map[string]any{"amount": r.Amount.String()}).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}
