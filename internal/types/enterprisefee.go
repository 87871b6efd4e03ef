package types

import (
	"slices"

	ierr "github.com/harvestlane/backoffice/internal/errors"
)

// FeeType classifies what an enterprise fee pays for
type FeeType string

const (
	FeeTypeSales       FeeType = "sales"
	FeeTypeAdmin       FeeType = "admin"
	FeeTypePayment     FeeType = "payment"
	FeeTypeShipping    FeeType = "shipping"
	FeeTypePacking     FeeType = "packing"
	FeeTypeTransport   FeeType = "transport"
	FeeTypeFundraising FeeType = "fundraising"
)

func (t FeeType) String() string {
	return string(t)
}

func (t FeeType) Validate() error {
	allowed := []FeeType{
		FeeTypeSales,
		FeeTypeAdmin,
		FeeTypePayment,
		FeeTypeShipping,
		FeeTypePacking,
		FeeTypeTransport,
		FeeTypeFundraising,
	}
	if !slices.Contains(allowed, t) {
		return ierr.NewError("invalid fee type").
			WithHintf("Fee type %q is not supported", string(t)).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// EnterpriseFeeFilter narrows enterprise fee listings
type EnterpriseFeeFilter struct {
	EnterpriseID string   `form:"enterprise_id"`
	FeeIDs       []string `form:"fee_ids"`
	Status       Status   `form:"status"`
}
