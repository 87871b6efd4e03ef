package dto

import (
	"context"

	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/harvestlane/backoffice/internal/validator"
)

// CalculatorRequest is a calculator kind with its preferences as submitted by the admin.
// Preferences arrive as strings and are parsed before use.
type CalculatorRequest struct {
	Type        types.CalculatorType      `json:"type" validate:"required"`
	Preferences calculator.RawPreferences `json:"preferences"`
}

// ToCalculator parses the preferences and checks the result can compute
func (r CalculatorRequest) ToCalculator() (calculator.Calculator, error) {
	if err := r.Type.Validate(); err != nil {
		return calculator.Calculator{}, err
	}

	prefs, err := calculator.ParsePreferences(r.Preferences)
	if err != nil {
		return calculator.Calculator{}, err
	}

	calc := calculator.New(r.Type, prefs)
	if err := calc.Validate(); err != nil {
		return calculator.Calculator{}, err
	}
	return calc, nil
}

// CreateEnterpriseFeeRequest represents the request to create an enterprise fee
type CreateEnterpriseFeeRequest struct {
	// enterprise_id is the supplier, distributor or coordinator that charges the fee
	EnterpriseID string `json:"enterprise_id" validate:"required"`

	Name    string            `json:"name" validate:"required,max=255"`
	FeeType types.FeeType     `json:"fee_type" validate:"required"`
	Calc    CalculatorRequest `json:"calculator" validate:"required"`

	// tax_category_id is ignored when inherits_tax_category is set
	TaxCategoryID       string `json:"tax_category_id,omitempty"`
	InheritsTaxCategory bool   `json:"inherits_tax_category"`
}

func (r *CreateEnterpriseFeeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.FeeType.Validate()
}

// ToEnterpriseFee builds the domain fee. Configuration rules are checked by the caller.
func (r *CreateEnterpriseFeeRequest) ToEnterpriseFee(ctx context.Context) (*enterprisefee.EnterpriseFee, error) {
	calc, err := r.Calc.ToCalculator()
	if err != nil {
		return nil, err
	}

	fee := enterprisefee.New(ctx, r.EnterpriseID, "", r.Name, r.FeeType, calc)
	fee.TaxCategoryID = r.TaxCategoryID
	fee.InheritsTaxCategory = r.InheritsTaxCategory
	return fee, nil
}

// UpdateEnterpriseFeeRequest changes only the fields that are present
type UpdateEnterpriseFeeRequest struct {
	Name                *string            `json:"name,omitempty" validate:"omitempty,max=255"`
	FeeType             *types.FeeType     `json:"fee_type,omitempty"`
	Calc                *CalculatorRequest `json:"calculator,omitempty"`
	TaxCategoryID       *string            `json:"tax_category_id,omitempty"`
	InheritsTaxCategory *bool              `json:"inherits_tax_category,omitempty"`
}

func (r *UpdateEnterpriseFeeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("name cannot be blank").
			WithHint("Fee name cannot be blank").
			Mark(ierr.ErrValidation)
	}
	if r.FeeType != nil {
		return r.FeeType.Validate()
	}
	return nil
}

// Apply copies the present fields onto the fee
func (r *UpdateEnterpriseFeeRequest) Apply(fee *enterprisefee.EnterpriseFee) error {
	if r.Name != nil {
		fee.Name = *r.Name
	}
	if r.FeeType != nil {
		fee.FeeType = *r.FeeType
	}
	if r.Calc != nil {
		calc, err := r.Calc.ToCalculator()
		if err != nil {
			return err
		}
		// keep the calculator identity across preference edits of the same kind
		if calc.Type == fee.Calculator.Type {
			calc.ID = fee.Calculator.ID
		}
		fee.Calculator = calc
	}
	if r.TaxCategoryID != nil {
		fee.TaxCategoryID = *r.TaxCategoryID
	}
	if r.InheritsTaxCategory != nil {
		fee.InheritsTaxCategory = *r.InheritsTaxCategory
	}
	return nil
}

// EnterpriseFeeResponse represents an enterprise fee in API responses
type EnterpriseFeeResponse struct {
	*enterprisefee.EnterpriseFee `json:",inline"`
	PerOrder                     bool `json:"per_order"`
}

func NewEnterpriseFeeResponse(fee *enterprisefee.EnterpriseFee) *EnterpriseFeeResponse {
	return &EnterpriseFeeResponse{
		EnterpriseFee: fee,
		PerOrder:      fee.IsPerOrder(),
	}
}

// ListEnterpriseFeesResponse represents the response for listing enterprise fees
type ListEnterpriseFeesResponse struct {
	Items []*EnterpriseFeeResponse `json:"items"`
}
