package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/order"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/publisher"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordingTrigger struct {
	mu      sync.Mutex
	feeIDs  []string
	tenants []string
}

func (t *recordingTrigger) TriggerFeeRecalculation(ctx context.Context, feeID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.feeIDs = append(t.feeIDs, feeID)
	t.tenants = append(t.tenants, types.GetTenantID(ctx))
	return nil
}

type FeeRecalculationServiceSuite struct {
	serviceTestSuite
	service  FeeRecalculationService
	testData struct {
		fee       *enterprisefee.EnterpriseFee
		openCart  *order.Order
		openCheck *order.Order
		complete  *order.Order
		unrelated *order.Order
	}
}

func TestFeeRecalculationService(t *testing.T) {
	suite.Run(t, new(FeeRecalculationServiceSuite))
}

func (s *FeeRecalculationServiceSuite) SetupTest() {
	s.serviceTestSuite.SetupTest()
	s.service = NewFeeRecalculationService(s.params, NewFeeSynchronizer(s.params), nil)
	s.setupTestData()
}

func (s *FeeRecalculationServiceSuite) setupTestData() {
	variant := newTestVariant(testFoodCategory)
	s.testData.fee = s.perItemPercentFee("Packing", testSupplierID, "10")

	oc := s.createOrderCycle([]string{variant.ID}, cycleFees{
		supplier: []*enterprisefee.EnterpriseFee{s.testData.fee},
	})
	other := s.createOrderCycle([]string{variant.ID}, cycleFees{})

	s.testData.openCart = s.createOrder(oc, types.OrderStateCart, newTestLineItem(variant, 1, "10.00"))
	s.testData.openCheck = s.createOrder(oc, types.OrderStateDelivery, newTestLineItem(variant, 2, "10.00"))
	s.testData.complete = s.createOrder(oc, types.OrderStateComplete, newTestLineItem(variant, 1, "10.00"))
	s.testData.unrelated = s.createOrder(other, types.OrderStateCart, newTestLineItem(variant, 1, "10.00"))
}

func (s *FeeRecalculationServiceSuite) packingAmount(orderID string) decimal.Decimal {
	o := s.loadOrder(orderID)
	fees := feeAdjustments(o.AllAdjustments())
	s.Require().Len(fees, 1)
	return fees[0].Amount
}

func (s *FeeRecalculationServiceSuite) TestListAffectedOrders() {
	ids, err := s.service.ListAffectedOrders(s.GetContext(), s.testData.fee.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]string{s.testData.openCart.ID, s.testData.openCheck.ID}, ids)

	ids, err = s.service.ListAffectedOrders(s.GetContext(), "fee_unattached")
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *FeeRecalculationServiceSuite) TestRecalculateOrders() {
	orderIDs := []string{s.testData.openCart.ID, s.testData.openCheck.ID, "ord_missing"}

	result, err := s.service.RecalculateOrders(s.GetContext(), s.testData.fee.ID, orderIDs)
	s.Require().NoError(err)
	s.Equal(3, result.Orders)
	s.Equal(2, result.Changed)
	s.Equal([]string{"ord_missing"}, result.Failed)

	s.assertDecimal("1.00", s.packingAmount(s.testData.openCart.ID))
	s.assertDecimal("2.00", s.packingAmount(s.testData.openCheck.ID))

	s.Run("nothing to do", func() {
		result, err := s.service.RecalculateOrders(s.GetContext(), s.testData.fee.ID, nil)
		s.Require().NoError(err)
		s.Equal(0, result.Orders)
	})
}

func (s *FeeRecalculationServiceSuite) TestRecalculateForFee() {
	_, err := s.service.RecalculateForFee(s.GetContext(), "")
	s.True(ierr.IsValidation(err))

	result, err := s.service.RecalculateForFee(s.GetContext(), s.testData.fee.ID)
	s.Require().NoError(err)
	s.Equal(2, result.Orders)
	s.Empty(result.Failed)

	fee := s.testData.fee
	fee.Calculator.Preferences.Percent = decimal.NewFromInt(20)
	s.Require().NoError(s.GetStores().EnterpriseFeeRepo.Update(s.GetContext(), fee))

	result, err = s.service.RecalculateForFee(s.GetContext(), s.testData.fee.ID)
	s.Require().NoError(err)
	s.Equal(2, result.Changed)
	s.assertDecimal("2.00", s.packingAmount(s.testData.openCart.ID))
	s.assertDecimal("4.00", s.packingAmount(s.testData.openCheck.ID))

	// finished and unrelated orders are left alone
	s.Empty(feeAdjustments(s.loadOrder(s.testData.complete.ID).AllAdjustments()))
	s.Empty(feeAdjustments(s.loadOrder(s.testData.unrelated.ID).AllAdjustments()))
}

func (s *FeeRecalculationServiceSuite) feeChangeMessage(feeID string) *message.Message {
	event := publisher.NewFeeEvent(s.GetContext(), types.EventEnterpriseFeeSaved)
	event.EnterpriseFeeID = feeID
	s.Require().NoError(s.GetPublisher().PublishFeeChange(s.GetContext(), event))

	messages := s.GetPubSub().GetMessages(s.GetConfig().Fees.FeeChangeTopic)
	s.Require().NotEmpty(messages)
	return messages[len(messages)-1]
}

func (s *FeeRecalculationServiceSuite) TestHandleFeeChangeInProcess() {
	msg := s.feeChangeMessage(s.testData.fee.ID)

	s.Require().NoError(s.service.HandleFeeChange(msg))

	s.assertDecimal("1.00", s.packingAmount(s.testData.openCart.ID))
	s.assertDecimal("2.00", s.packingAmount(s.testData.openCheck.ID))
}

func (s *FeeRecalculationServiceSuite) TestHandleFeeChangeWithTrigger() {
	trigger := &recordingTrigger{}
	svc := NewFeeRecalculationService(s.params, NewFeeSynchronizer(s.params), trigger)

	s.Run("hands the fee to the trigger", func() {
		s.Require().NoError(svc.HandleFeeChange(s.feeChangeMessage(s.testData.fee.ID)))
		s.Equal([]string{s.testData.fee.ID}, trigger.feeIDs)
		s.Equal([]string{types.DefaultTenantID}, trigger.tenants)
		// recalculation is left to the trigger
		s.Equal(0, s.GetStores().AdjustmentRepo.Len())
	})

	s.Run("event without a fee is acked", func() {
		s.Require().NoError(svc.HandleFeeChange(s.feeChangeMessage("")))
		s.Len(trigger.feeIDs, 1)
	})

	s.Run("malformed payload", func() {
		err := svc.HandleFeeChange(message.NewMessage("msg_1", []byte("not json")))
		s.True(ierr.IsValidation(err))
	})
}
