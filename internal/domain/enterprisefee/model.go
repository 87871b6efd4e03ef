package enterprisefee

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/calculator"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
)

// EnterpriseFee is a charge levied by a supplier, distributor or coordinator.
// Its calculator decides whether it applies per line item or once per order.
type EnterpriseFee struct {
	ID             string                `db:"id" json:"id"`
	EnterpriseID   string                `db:"enterprise_id" json:"enterprise_id"`
	EnterpriseName string                `db:"enterprise_name" json:"enterprise_name"`
	Name           string                `db:"name" json:"name"`
	FeeType        types.FeeType         `db:"fee_type" json:"fee_type"`
	Calculator     calculator.Calculator `db:"-" json:"calculator"`
	TaxCategoryID  string                `db:"tax_category_id" json:"tax_category_id,omitempty"`
	// InheritsTaxCategory taxes the fee under the category of the product it is charged on
	InheritsTaxCategory bool `db:"inherits_tax_category" json:"inherits_tax_category"`
	types.BaseModel
}

// New returns a published fee with a fresh id
func New(ctx context.Context, enterpriseID, enterpriseName, name string, feeType types.FeeType, calc calculator.Calculator) *EnterpriseFee {
	return &EnterpriseFee{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENTERPRISE_FEE),
		EnterpriseID:   enterpriseID,
		EnterpriseName: enterpriseName,
		Name:           name,
		FeeType:        feeType,
		Calculator:     calc,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// IsPerOrder reports whether the fee is charged once per order
func (f *EnterpriseFee) IsPerOrder() bool {
	return f.Calculator.IsPerOrder()
}

// TaxCategoryFor resolves the tax category a fee adjustment on a product should carry
func (f *EnterpriseFee) TaxCategoryFor(productTaxCategoryID string) string {
	if f.InheritsTaxCategory {
		return productTaxCategoryID
	}
	return f.TaxCategoryID
}

// Validate checks that the fee can be applied. A per-order fee has no single product to
// inherit a tax category from, so the combination is rejected.
func (f *EnterpriseFee) Validate() error {
	if f.Name == "" {
		return ierr.NewError("fee name is required").
			WithHint("Please provide a name for the fee").
			Mark(ierr.ErrValidation)
	}
	if f.EnterpriseID == "" {
		return ierr.NewError("enterprise is required").
			WithHint("A fee must belong to an enterprise").
			Mark(ierr.ErrValidation)
	}
	if err := f.FeeType.Validate(); err != nil {
		return err
	}
	if err := f.Calculator.Validate(); err != nil {
		return err
	}
	if f.Calculator.Type == types.CalculatorTypeDefaultTax {
		return ierr.NewError("enterprise fees cannot use the tax calculator").
			WithHint("Choose a fee calculator such as flat rate or per item").
			Mark(ierr.ErrConfiguration)
	}
	if f.InheritsTaxCategory && f.IsPerOrder() {
		return ierr.NewError("per-order fee cannot inherit a product tax category").
			WithHint("Set an explicit tax category or use a per-item calculator").
			WithReportableDetails(map[string]any{
				"fee_id":          f.ID,
				"calculator_type": f.Calculator.Type,
			}).
			Mark(ierr.ErrConfiguration)
	}
	return nil
}
