package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/publisher"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// FeeRecalculationTrigger starts a background recalculation of the orders using a fee.
// The temporal client implements it when temporal is enabled.
type FeeRecalculationTrigger interface {
	TriggerFeeRecalculation(ctx context.Context, feeID string) error
}

// RecalculationResult summarizes a background recalculation
type RecalculationResult struct {
	FeeID   string   `json:"fee_id"`
	Orders  int      `json:"orders"`
	Failed  []string `json:"failed,omitempty"`
	Changed int      `json:"changed"`
}

// FeeRecalculationService resynchronizes open orders after a fee's configuration changed
type FeeRecalculationService interface {
	// ListAffectedOrders returns the open orders of every order cycle the fee is attached to
	ListAffectedOrders(ctx context.Context, feeID string) ([]string, error)
	// RecalculateOrders runs a full synchronization on each order with bounded concurrency.
	// One failing order does not stop the others.
	RecalculateOrders(ctx context.Context, feeID string, orderIDs []string) (*RecalculationResult, error)
	// RecalculateForFee lists and recalculates in one go
	RecalculateForFee(ctx context.Context, feeID string) (*RecalculationResult, error)
	// HandleFeeChange consumes enterprise fee change events
	HandleFeeChange(msg *message.Message) error
}

type feeRecalculationService struct {
	ServiceParams
	synchronizer FeeSynchronizer
	trigger      FeeRecalculationTrigger
}

// NewFeeRecalculationService wires the service. A nil trigger recalculates in process.
func NewFeeRecalculationService(params ServiceParams, synchronizer FeeSynchronizer, trigger FeeRecalculationTrigger) FeeRecalculationService {
	s := &feeRecalculationService{
		ServiceParams: params,
		synchronizer:  synchronizer,
	}
	s.trigger = trigger
	if s.trigger == nil {
		s.trigger = &inProcessTrigger{service: s}
	}
	return s
}

func (s *feeRecalculationService) ListAffectedOrders(ctx context.Context, feeID string) ([]string, error) {
	orderCycleIDs, err := s.OrderCycleRepo.ListIDsByEnterpriseFee(ctx, feeID)
	if err != nil {
		return nil, err
	}
	if len(orderCycleIDs) == 0 {
		return nil, nil
	}

	orders, err := s.OrderRepo.List(ctx, &types.OrderFilter{
		OrderCycleIDs:    orderCycleIDs,
		ExcludeCompleted: true,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	s.Logger.Infow("listed orders affected by fee change",
		"fee_id", feeID,
		"order_cycles", len(orderCycleIDs),
		"orders", len(ids),
	)
	return ids, nil
}

func (s *feeRecalculationService) RecalculateOrders(ctx context.Context, feeID string, orderIDs []string) (*RecalculationResult, error) {
	result := &RecalculationResult{FeeID: feeID, Orders: len(orderIDs)}
	if len(orderIDs) == 0 {
		return result, nil
	}

	type outcome struct {
		orderID string
		changed bool
		err     error
	}
	outcomes := make(chan outcome, len(orderIDs))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.concurrency())
	for _, orderID := range orderIDs {
		p.Go(func(ctx context.Context) error {
			synced, err := s.synchronizer.RecreateAllFees(ctx, orderID)
			o := outcome{orderID: orderID, err: err}
			if err == nil {
				o.changed = !synced.Changes.Empty()
			}
			outcomes <- o
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	close(outcomes)

	for o := range outcomes {
		switch {
		case o.err != nil:
			result.Failed = append(result.Failed, o.orderID)
			s.Logger.Errorw("failed to recalculate order fees",
				"fee_id", feeID,
				"order_id", o.orderID,
				"error", o.err,
			)
		case o.changed:
			result.Changed++
		}
	}

	s.Logger.Infow("recalculated orders for fee",
		"fee_id", feeID,
		"orders", result.Orders,
		"changed", result.Changed,
		"failed", len(result.Failed),
	)
	return result, nil
}

func (s *feeRecalculationService) RecalculateForFee(ctx context.Context, feeID string) (*RecalculationResult, error) {
	if feeID == "" {
		return nil, ierr.NewError("enterprise_fee_id is required").
			WithHint("Enterprise fee ID is required").
			Mark(ierr.ErrValidation)
	}

	orderIDs, err := s.ListAffectedOrders(ctx, feeID)
	if err != nil {
		return nil, err
	}
	return s.RecalculateOrders(ctx, feeID, orderIDs)
}

func (s *feeRecalculationService) HandleFeeChange(msg *message.Message) error {
	event, err := publisher.DecodeFeeEvent(msg)
	if err != nil {
		return err
	}
	if event.EnterpriseFeeID == "" {
		s.Logger.Warnw("ignoring fee change event without a fee",
			"event_id", event.ID,
			"event_name", event.EventName,
		)
		return nil
	}

	ctx := types.SetTenantID(msg.Context(), event.TenantID)
	ctx = types.SetRequestID(ctx, event.ID)

	s.Logger.Debugw("received fee change",
		"event_id", event.ID,
		"fee_id", event.EnterpriseFeeID,
		"tenant_id", event.TenantID,
	)
	return s.trigger.TriggerFeeRecalculation(ctx, event.EnterpriseFeeID)
}

func (s *feeRecalculationService) concurrency() int {
	if n := s.Config.Fees.RecalculationConcurrency; n > 0 {
		return n
	}
	return 1
}

// inProcessTrigger recalculates on the consuming goroutine when temporal is disabled
type inProcessTrigger struct {
	service FeeRecalculationService
}

func (t *inProcessTrigger) TriggerFeeRecalculation(ctx context.Context, feeID string) error {
	result, err := t.service.RecalculateForFee(ctx, feeID)
	if err != nil {
		return err
	}
	if len(result.Failed) > 0 {
		return ierr.NewErrorf("%d of %d orders failed to recalculate", len(result.Failed), result.Orders).
			WithHint("Some orders could not be resynchronized").
			WithReportableDetails(map[string]any{
				"fee_id": feeID,
				"failed": result.Failed,
			}).
			Mark(ierr.ErrSystem)
	}
	return nil
}
