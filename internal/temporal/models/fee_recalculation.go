package models

import (
	ierr "github.com/harvestlane/backoffice/internal/errors"
)

const (
	// FeeRecalculationBatchSize is how many orders one RecreateOrderFees activity handles
	FeeRecalculationBatchSize = 50
)

// FeeRecalculationWorkflowInput represents input for the fee recalculation workflow
type FeeRecalculationWorkflowInput struct {
	EnterpriseFeeID string `json:"enterprise_fee_id"`
	TenantID        string `json:"tenant_id"`
	UserID          string `json:"user_id"`
}

func (i *FeeRecalculationWorkflowInput) Validate() error {
	if i.EnterpriseFeeID == "" {
		return ierr.NewError("enterprise fee ID is required").
			WithHint("Enterprise fee ID is required").
			Mark(ierr.ErrValidation)
	}

	if i.TenantID == "" {
		return ierr.NewError("tenant ID is required").
			WithHint("Tenant ID is required").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ListAffectedOrdersInput represents the input for the ListAffectedOrders activity
type ListAffectedOrdersInput struct {
	EnterpriseFeeID string `json:"enterprise_fee_id"`
	TenantID        string `json:"tenant_id"`
}

// RecreateOrderFeesInput represents the input for the RecreateOrderFees activity
type RecreateOrderFeesInput struct {
	EnterpriseFeeID string   `json:"enterprise_fee_id"`
	TenantID        string   `json:"tenant_id"`
	OrderIDs        []string `json:"order_ids"`
}

// FeeRecalculationWorkflowResult summarizes all batches
type FeeRecalculationWorkflowResult struct {
	EnterpriseFeeID string   `json:"enterprise_fee_id"`
	Orders          int      `json:"orders"`
	Changed         int      `json:"changed"`
	Failed          []string `json:"failed,omitempty"`
	Batches         int      `json:"batches"`
}
