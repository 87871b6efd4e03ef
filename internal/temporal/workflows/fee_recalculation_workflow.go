package workflows

import (
	"time"

	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/temporal/models"
	"github.com/samber/lo"
	temporalsdk "go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	ActivityListAffectedOrders = "ListAffectedOrders"
	ActivityRecreateOrderFees  = "RecreateOrderFees"
)

// FeeRecalculationWorkflow resynchronizes every open order affected by a fee change,
// one batch of orders per activity
func FeeRecalculationWorkflow(ctx workflow.Context, input models.FeeRecalculationWorkflowInput) (*models.FeeRecalculationWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting fee recalculation workflow", "feeID", input.EnterpriseFeeID)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute * 5,
		RetryPolicy: &temporalsdk.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var orderIDs []string
	listInput := models.ListAffectedOrdersInput{
		EnterpriseFeeID: input.EnterpriseFeeID,
		TenantID:        input.TenantID,
	}
	if err := workflow.ExecuteActivity(ctx, ActivityListAffectedOrders, listInput).Get(ctx, &orderIDs); err != nil {
		logger.Error("Listing affected orders failed", "feeID", input.EnterpriseFeeID, "error", err)
		return nil, err
	}

	result := &models.FeeRecalculationWorkflowResult{
		EnterpriseFeeID: input.EnterpriseFeeID,
		Orders:          len(orderIDs),
	}

	for _, batch := range lo.Chunk(orderIDs, models.FeeRecalculationBatchSize) {
		var batchResult service.RecalculationResult
		batchInput := models.RecreateOrderFeesInput{
			EnterpriseFeeID: input.EnterpriseFeeID,
			TenantID:        input.TenantID,
			OrderIDs:        batch,
		}
		if err := workflow.ExecuteActivity(ctx, ActivityRecreateOrderFees, batchInput).Get(ctx, &batchResult); err != nil {
			logger.Error("Recreating order fees failed", "feeID", input.EnterpriseFeeID, "error", err)
			return nil, err
		}

		result.Batches++
		result.Changed += batchResult.Changed
		result.Failed = append(result.Failed, batchResult.Failed...)
	}

	logger.Info("Fee recalculation workflow completed",
		"feeID", input.EnterpriseFeeID,
		"orders", result.Orders,
		"changed", result.Changed,
		"failed", len(result.Failed),
	)
	return result, nil
}
