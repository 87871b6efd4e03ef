package service

import (
	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/domain/ordercycle"
	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	"github.com/harvestlane/backoffice/internal/testutil"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	testSupplierID    = "ent_green_farm"
	testCoordinatorID = "ent_valley_hub"
	testDistributorID = "ent_corner_shop"

	testFoodCategory    = "txc_food"
	testServiceCategory = "txc_services"
	testZoneID          = "zone_local"
)

var testEnterpriseNames = map[string]string{
	testSupplierID:    "Green Farm",
	testCoordinatorID: "Valley Hub",
	testDistributorID: "Corner Shop",
}

// serviceTestSuite wires ServiceParams over the in-memory stores and adds fixture builders
type serviceTestSuite struct {
	testutil.BaseServiceTestSuite
	params ServiceParams
}

func (s *serviceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.params = ServiceParams{
		Logger:            s.GetLogger(),
		Config:            s.GetConfig(),
		DB:                s.GetDB(),
		Locker:            s.GetLocker(),
		Sentry:            s.GetSentry(),
		OrderRepo:         stores.OrderRepo,
		AdjustmentRepo:    stores.AdjustmentRepo,
		EnterpriseFeeRepo: stores.EnterpriseFeeRepo,
		OrderCycleRepo:    stores.OrderCycleRepo,
		TaxRateRepo:       stores.TaxRateRepo,
		FeeEventPublisher: s.GetPublisher(),
	}
}

type cycleFees struct {
	supplier    []*enterprisefee.EnterpriseFee
	distributor []*enterprisefee.EnterpriseFee
	coordinator []*enterprisefee.EnterpriseFee
}

func (s *serviceTestSuite) createFee(name, enterpriseID string, calcType types.CalculatorType, prefs calculator.Preferences) *enterprisefee.EnterpriseFee {
	fee := enterprisefee.New(s.GetContext(), enterpriseID, testEnterpriseNames[enterpriseID], name, types.FeeTypeAdmin, calculator.New(calcType, prefs))
	s.Require().NoError(s.GetStores().EnterpriseFeeRepo.Create(s.GetContext(), fee))
	return fee
}

func (s *serviceTestSuite) perItemPercentFee(name, enterpriseID, percent string) *enterprisefee.EnterpriseFee {
	return s.createFee(name, enterpriseID, types.CalculatorTypeFlatPercentPerItem, calculator.Preferences{
		Percent: decimal.RequireFromString(percent),
	})
}

func (s *serviceTestSuite) flatOrderFee(name, enterpriseID, amount string) *enterprisefee.EnterpriseFee {
	return s.createFee(name, enterpriseID, types.CalculatorTypeFlatRate, calculator.Preferences{
		Amount: decimal.RequireFromString(amount),
	})
}

// createOrderCycle seeds a cycle with one supplier leg and one distributor leg, both carrying the variants
func (s *serviceTestSuite) createOrderCycle(variantIDs []string, fees cycleFees) *ordercycle.OrderCycle {
	id := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER_CYCLE)
	oc := &ordercycle.OrderCycle{
		ID:              id,
		TenantID:        types.DefaultTenantID,
		Name:            "Week 42",
		CoordinatorID:   testCoordinatorID,
		CoordinatorFees: fees.coordinator,
		Exchanges: []*ordercycle.Exchange{
			{
				ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EXCHANGE),
				OrderCycleID:   id,
				SenderID:       testSupplierID,
				ReceiverID:     testCoordinatorID,
				Incoming:       true,
				VariantIDs:     variantIDs,
				EnterpriseFees: fees.supplier,
			},
			{
				ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EXCHANGE),
				OrderCycleID:   id,
				SenderID:       testCoordinatorID,
				ReceiverID:     testDistributorID,
				VariantIDs:     variantIDs,
				EnterpriseFees: fees.distributor,
			},
		},
	}
	s.Require().NoError(s.GetStores().OrderCycleRepo.Put(s.GetContext(), oc))
	return oc
}

func newTestVariant(taxCategoryID string) *order.Variant {
	productID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT)
	return &order.Variant{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VARIANT),
		ProductID:   productID,
		SupplierID:  testSupplierID,
		UnitValue:   decimal.NewFromInt(1000),
		VariantUnit: types.VariantUnitWeight,
		Weight:      decimal.NewFromInt(1),
		Product: &order.Product{
			ID:            productID,
			Name:          "Apples",
			TaxCategoryID: taxCategoryID,
		},
	}
}

func newTestLineItem(v *order.Variant, quantity int, price string) *order.LineItem {
	return &order.LineItem{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM),
		VariantID: v.ID,
		Quantity:  quantity,
		Price:     decimal.RequireFromString(price),
		Variant:   v,
	}
}

// createOrder seeds an order placed with the test distributor in the cycle
func (s *serviceTestSuite) createOrder(oc *ordercycle.OrderCycle, state types.OrderState, lineItems ...*order.LineItem) *order.Order {
	o := &order.Order{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		TenantID:      types.DefaultTenantID,
		Number:        "R100200300",
		DistributorID: lo.ToPtr(testDistributorID),
		State:         state,
		Currency:      "AUD",
		TaxZoneID:     testZoneID,
		LineItems:     lineItems,
		CreatedAt:     s.GetNow(),
		UpdatedAt:     s.GetNow(),
	}
	if oc != nil {
		o.OrderCycleID = lo.ToPtr(oc.ID)
	}
	for _, li := range lineItems {
		li.OrderID = o.ID
	}
	s.Require().NoError(s.GetStores().OrderRepo.Put(s.GetContext(), o))
	return o
}

func (s *serviceTestSuite) createTaxRate(name, amount, category string, included bool) *taxrate.TaxRate {
	rate := taxrate.New(s.GetContext(), name, decimal.RequireFromString(amount), category, included)
	rate.ZoneID = testZoneID
	s.Require().NoError(s.GetStores().TaxRateRepo.Put(s.GetContext(), rate))
	return rate
}

func (s *serviceTestSuite) loadOrder(id string) *order.Order {
	o, err := s.GetStores().OrderRepo.Get(s.GetContext(), id)
	s.Require().NoError(err)
	return o
}

func (s *serviceTestSuite) assertDecimal(expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	s.True(decimal.RequireFromString(expected).Equal(actual),
		append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func feeAdjustments(adjustments []*adjustment.Adjustment) []*adjustment.Adjustment {
	return lo.Filter(adjustments, func(a *adjustment.Adjustment, _ int) bool {
		return a.IsEnterpriseFee()
	})
}

func taxAdjustments(adjustments []*adjustment.Adjustment) []*adjustment.Adjustment {
	return lo.Filter(adjustments, func(a *adjustment.Adjustment, _ int) bool {
		return a.IsTax()
	})
}

// snapshotKey is what idempotence compares: who charged what, on which target, under which role
type snapshotKey struct {
	ID           string
	OriginatorID string
	AdjustableID string
	Role         types.AdjustmentRole
	Amount       string
}

func snapshot(adjustments []*adjustment.Adjustment) []snapshotKey {
	return lo.Map(adjustments, func(a *adjustment.Adjustment, _ int) snapshotKey {
		return snapshotKey{
			ID:           a.ID,
			OriginatorID: a.OriginatorID,
			AdjustableID: a.AdjustableID,
			Role:         a.Role,
			Amount:       a.Amount.StringFixed(2),
		}
	})
}
