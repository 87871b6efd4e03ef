package temporal

import (
	"context"

	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/temporal/models"
	"github.com/harvestlane/backoffice/internal/temporal/workflows"
	"github.com/harvestlane/backoffice/internal/types"
	"go.temporal.io/sdk/client"
)

type feeRecalculationTrigger struct {
	client    client.Client
	taskQueue string
	logger    *logger.Logger
}

// NewFeeRecalculationTrigger returns a trigger that starts FeeRecalculationWorkflow, or nil
// when temporal is disabled so the recalculation service runs in process.
func NewFeeRecalculationTrigger(c *TemporalClient, taskQueue string, logger *logger.Logger) service.FeeRecalculationTrigger {
	if !c.Enabled() {
		return nil
	}
	return &feeRecalculationTrigger{
		client:    c.Client,
		taskQueue: taskQueue,
		logger:    logger,
	}
}

func (t *feeRecalculationTrigger) TriggerFeeRecalculation(ctx context.Context, feeID string) error {
	if !types.HasTenant(ctx) {
		return ierr.NewError("no tenant in context").
			WithHint("Fee recalculation needs a tenant").
			Mark(ierr.ErrValidation)
	}

	input := models.FeeRecalculationWorkflowInput{
		EnterpriseFeeID: feeID,
		TenantID:        types.GetTenantID(ctx),
		UserID:          types.GetUserID(ctx),
	}
	if err := input.Validate(); err != nil {
		return err
	}

	options := client.StartWorkflowOptions{
		ID:        "fee-recalculation-" + feeID + "-" + types.GenerateUUID(),
		TaskQueue: t.taskQueue,
	}

	run, err := t.client.ExecuteWorkflow(ctx, options, workflows.FeeRecalculationWorkflow, input)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to start fee recalculation").
			WithReportableDetails(map[string]any{"fee_id": feeID}).
			Mark(ierr.ErrSystem)
	}

	t.logger.Infow("started fee recalculation workflow",
		"fee_id", feeID,
		"workflow_id", run.GetID(),
		"run_id", run.GetRunID(),
	)
	return nil
}
