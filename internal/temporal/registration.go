package temporal

import (
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/temporal/activities"
	"github.com/harvestlane/backoffice/internal/temporal/workflows"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
)

// RegisterWorkflowsAndActivities registers all workflows and activities with a Temporal worker.
func RegisterWorkflowsAndActivities(w worker.Worker, recalculation service.FeeRecalculationService, log *logger.Logger) {
	w.RegisterWorkflow(workflows.FeeRecalculationWorkflow) // "FeeRecalculationWorkflow"

	feeActivities := activities.NewFeeRecalculationActivities(recalculation)
	w.RegisterActivityWithOptions(feeActivities.ListAffectedOrders, activity.RegisterOptions{
		Name: workflows.ActivityListAffectedOrders,
	})
	w.RegisterActivityWithOptions(feeActivities.RecreateOrderFees, activity.RegisterOptions{
		Name: workflows.ActivityRecreateOrderFees,
	})

	log.Infow("registered temporal workflows and activities",
		"workflows", []string{"FeeRecalculationWorkflow"},
		"activities", []string{workflows.ActivityListAffectedOrders, workflows.ActivityRecreateOrderFees},
	)
}
