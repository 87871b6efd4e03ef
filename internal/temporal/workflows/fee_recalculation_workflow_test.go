package workflows

import (
	"context"
	"fmt"
	"testing"

	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/temporal/models"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

type FeeRecalculationWorkflowSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env *testsuite.TestWorkflowEnvironment

	orderIDs []string
	batches  [][]string
}

func TestFeeRecalculationWorkflow(t *testing.T) {
	suite.Run(t, new(FeeRecalculationWorkflowSuite))
}

func (s *FeeRecalculationWorkflowSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	s.batches = nil
	s.orderIDs = nil
	for i := 0; i < 120; i++ {
		s.orderIDs = append(s.orderIDs, fmt.Sprintf("ord_%03d", i))
	}

	s.env.RegisterActivityWithOptions(
		func(ctx context.Context, input models.ListAffectedOrdersInput) ([]string, error) {
			return s.orderIDs, nil
		},
		activity.RegisterOptions{Name: ActivityListAffectedOrders},
	)
	s.env.RegisterActivityWithOptions(
		func(ctx context.Context, input models.RecreateOrderFeesInput) (*service.RecalculationResult, error) {
			s.batches = append(s.batches, input.OrderIDs)
			result := &service.RecalculationResult{
				FeeID:   input.EnterpriseFeeID,
				Orders:  len(input.OrderIDs),
				Changed: len(input.OrderIDs),
			}
			if len(s.batches) == 2 {
				// one order of the second batch fails
				result.Failed = []string{input.OrderIDs[0]}
				result.Changed--
			}
			return result, nil
		},
		activity.RegisterOptions{Name: ActivityRecreateOrderFees},
	)
}

func (s *FeeRecalculationWorkflowSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func (s *FeeRecalculationWorkflowSuite) TestRecalculatesInBatches() {
	s.env.ExecuteWorkflow(FeeRecalculationWorkflow, models.FeeRecalculationWorkflowInput{
		EnterpriseFeeID: "fee_packing",
		TenantID:        "tenant_1",
	})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result models.FeeRecalculationWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))

	s.Equal("fee_packing", result.EnterpriseFeeID)
	s.Equal(120, result.Orders)
	s.Equal(3, result.Batches)
	s.Equal(119, result.Changed)
	s.Equal([]string{"ord_050"}, result.Failed)

	s.Require().Len(s.batches, 3)
	s.Len(s.batches[0], models.FeeRecalculationBatchSize)
	s.Len(s.batches[2], 20)
}

func (s *FeeRecalculationWorkflowSuite) TestNoAffectedOrders() {
	s.orderIDs = nil

	s.env.ExecuteWorkflow(FeeRecalculationWorkflow, models.FeeRecalculationWorkflowInput{
		EnterpriseFeeID: "fee_packing",
		TenantID:        "tenant_1",
	})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result models.FeeRecalculationWorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(0, result.Orders)
	s.Equal(0, result.Batches)
	s.Empty(s.batches)
}

func (s *FeeRecalculationWorkflowSuite) TestRejectsInvalidInput() {
	s.env.ExecuteWorkflow(FeeRecalculationWorkflow, models.FeeRecalculationWorkflowInput{
		EnterpriseFeeID: "fee_packing",
	})

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
	s.Empty(s.batches)
}
