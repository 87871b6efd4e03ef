package dto

import (
	"github.com/harvestlane/backoffice/internal/domain/calculator"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/harvestlane/backoffice/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PreviewItem is a hypothetical line: a variant at a price and quantity that is not in any order yet
type PreviewItem struct {
	Quantity    int               `json:"quantity" validate:"gte=0"`
	Price       decimal.Decimal   `json:"price"`
	UnitValue   decimal.Decimal   `json:"unit_value"`
	VariantUnit types.VariantUnit `json:"variant_unit,omitempty" validate:"omitempty,oneof=weight volume items"`
	// weight is the shipping weight in kilograms, used when the variant is not sold by weight
	Weight            decimal.Decimal  `json:"weight"`
	FinalWeightVolume *decimal.Decimal `json:"final_weight_volume,omitempty"`
}

func (i PreviewItem) toItem() calculator.Item {
	return calculator.Item{
		Quantity:          i.Quantity,
		Price:             i.Price,
		UnitValue:         i.UnitValue,
		VariantUnit:       i.VariantUnit,
		Weight:            i.Weight,
		FinalWeightVolume: i.FinalWeightVolume,
	}
}

// CalculatorPreviewRequest asks for the amount a calculator would charge on a set of items
type CalculatorPreviewRequest struct {
	Calc  CalculatorRequest `json:"calculator" validate:"required"`
	Items []PreviewItem     `json:"items" validate:"required,min=1,dive"`
}

func (r *CalculatorPreviewRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for i, item := range r.Items {
		if item.Price.IsNegative() {
			return ierr.NewError("price cannot be negative").
				WithHintf("Item %d has a negative price", i).
				WithReportableDetails(map[string]any{"index": i, "price": item.Price.String()}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// Subject returns the items as something a calculator can compute on
func (r *CalculatorPreviewRequest) Subject() calculator.Computable {
	return previewSubject(lo.Map(r.Items, func(i PreviewItem, _ int) calculator.Item {
		return i.toItem()
	}))
}

type previewSubject []calculator.Item

func (s previewSubject) CalculableItems() []calculator.Item {
	return s
}

func (s previewSubject) TaxableAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s {
		total = total.Add(item.Amount())
	}
	return total
}

// CalculatorPreviewResponse is the amount the calculator would charge
type CalculatorPreviewResponse struct {
	Type     types.CalculatorType `json:"type"`
	Amount   decimal.Decimal      `json:"amount"`
	PerOrder bool                 `json:"per_order"`
}

// EstimateVariantFeesRequest asks which fees a variant would carry when bought from a distributor
type EstimateVariantFeesRequest struct {
	OrderCycleID  string      `json:"order_cycle_id" validate:"required"`
	DistributorID string      `json:"distributor_id" validate:"required"`
	VariantID     string      `json:"variant_id" validate:"required"`
	Item          PreviewItem `json:"item"`
}

func (r *EstimateVariantFeesRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Item.Quantity == 0 {
		r.Item.Quantity = 1
	}
	if r.Item.Price.IsNegative() {
		return ierr.NewError("price cannot be negative").
			WithHint("Item price must be zero or more").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Subject returns the single hypothetical line
func (r *EstimateVariantFeesRequest) Subject() calculator.Computable {
	return previewSubject{r.Item.toItem()}
}

// FeeEstimate is one fee a variant would carry
type FeeEstimate struct {
	EnterpriseFeeID string               `json:"enterprise_fee_id"`
	Label           string               `json:"label"`
	Role            types.AdjustmentRole `json:"role"`
	FeeType         types.FeeType        `json:"fee_type"`
	Amount          decimal.Decimal      `json:"amount"`
}

// EstimateVariantFeesResponse lists the per-item fees on a variant and their sum
type EstimateVariantFeesResponse struct {
	Fees  []FeeEstimate   `json:"fees"`
	Total decimal.Decimal `json:"total"`
	// Distributed is false when the variant is not currently offered by the distributor
	Distributed bool `json:"distributed"`
}
