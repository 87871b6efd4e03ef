package service

import (
	"testing"

	"github.com/harvestlane/backoffice/internal/domain/calculator"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/domain/ordercycle"
	"github.com/harvestlane/backoffice/internal/testutil"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFee(name string, calcType types.CalculatorType) *enterprisefee.EnterpriseFee {
	return &enterprisefee.EnterpriseFee{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENTERPRISE_FEE),
		EnterpriseID:   testSupplierID,
		EnterpriseName: "Green Farm",
		Name:           name,
		FeeType:        types.FeeTypeAdmin,
		Calculator: calculator.Calculator{
			Type:        calcType,
			Preferences: calculator.Preferences{Amount: decimal.NewFromInt(1)},
		},
	}
}

type resolverFixture struct {
	variantA, variantB   string
	supplierItemFee      *enterprisefee.EnterpriseFee
	supplierOrderFee     *enterprisefee.EnterpriseFee
	distributorItemFee   *enterprisefee.EnterpriseFee
	coordinatorItemFee   *enterprisefee.EnterpriseFee
	coordinatorOrderFee  *enterprisefee.EnterpriseFee
	orderCycle           *ordercycle.OrderCycle
	distributorLeg       *ordercycle.Exchange
	secondSupplierLegFee *enterprisefee.EnterpriseFee
}

func newResolverFixture() *resolverFixture {
	f := &resolverFixture{
		variantA:             "var_a",
		variantB:             "var_b",
		supplierItemFee:      testFee("Packing", types.CalculatorTypePerItem),
		supplierOrderFee:     testFee("Delivery", types.CalculatorTypeFlatRate),
		distributorItemFee:   testFee("Handling", types.CalculatorTypePerItem),
		coordinatorItemFee:   testFee("Sorting", types.CalculatorTypePerItem),
		coordinatorOrderFee:  testFee("Admin", types.CalculatorTypeFlatRate),
		secondSupplierLegFee: testFee("Washing", types.CalculatorTypePerItem),
	}

	f.distributorLeg = &ordercycle.Exchange{
		ID:             "exch_out",
		SenderID:       testCoordinatorID,
		ReceiverID:     testDistributorID,
		VariantIDs:     []string{f.variantA, f.variantB},
		EnterpriseFees: []*enterprisefee.EnterpriseFee{f.distributorItemFee},
	}
	f.orderCycle = &ordercycle.OrderCycle{
		ID:              "oc_1",
		CoordinatorID:   testCoordinatorID,
		CoordinatorFees: []*enterprisefee.EnterpriseFee{f.coordinatorItemFee, f.coordinatorOrderFee},
		Exchanges: []*ordercycle.Exchange{
			{
				ID:             "exch_in_a",
				SenderID:       testSupplierID,
				ReceiverID:     testCoordinatorID,
				Incoming:       true,
				VariantIDs:     []string{f.variantA},
				EnterpriseFees: []*enterprisefee.EnterpriseFee{f.supplierItemFee, f.supplierOrderFee},
			},
			{
				ID:             "exch_in_b",
				SenderID:       "ent_other_farm",
				ReceiverID:     testCoordinatorID,
				Incoming:       true,
				VariantIDs:     []string{f.variantB},
				EnterpriseFees: []*enterprisefee.EnterpriseFee{f.secondSupplierLegFee},
			},
			{
				ID:         "exch_out_elsewhere",
				SenderID:   testCoordinatorID,
				ReceiverID: "ent_other_shop",
				VariantIDs: []string{f.variantA},
				EnterpriseFees: []*enterprisefee.EnterpriseFee{
					testFee("Elsewhere", types.CalculatorTypePerItem),
				},
			},
			f.distributorLeg,
		},
	}
	return f
}

type resolved struct {
	feeID string
	role  types.AdjustmentRole
}

func pairs(applicators []FeeApplicator) []resolved {
	return lo.Map(applicators, func(a FeeApplicator, _ int) resolved {
		return resolved{feeID: a.Fee.ID, role: a.Role}
	})
}

func TestFeeResolver_AllFeesFor(t *testing.T) {
	f := newResolverFixture()
	r := NewFeeResolver(testDistributorID, f.orderCycle)

	got := pairs(r.AllFeesFor(f.variantA))
	assert.Equal(t, []resolved{
		{f.supplierItemFee.ID, types.AdjustmentRoleSupplier},
		{f.supplierOrderFee.ID, types.AdjustmentRoleSupplier},
		{f.distributorItemFee.ID, types.AdjustmentRoleDistributor},
		{f.coordinatorItemFee.ID, types.AdjustmentRoleCoordinator},
		{f.coordinatorOrderFee.ID, types.AdjustmentRoleCoordinator},
	}, got)

	got = pairs(r.AllFeesFor(f.variantB))
	assert.Equal(t, resolved{f.secondSupplierLegFee.ID, types.AdjustmentRoleSupplier}, got[0])
	assert.NotContains(t, got, resolved{f.supplierItemFee.ID, types.AdjustmentRoleSupplier})
}

func TestFeeResolver_SameFeeOnBothLegs(t *testing.T) {
	f := newResolverFixture()
	f.distributorLeg.EnterpriseFees = append(f.distributorLeg.EnterpriseFees, f.supplierItemFee)
	r := NewFeeResolver(testDistributorID, f.orderCycle)

	got := pairs(r.PerItemFeesFor(f.variantA))
	assert.Contains(t, got, resolved{f.supplierItemFee.ID, types.AdjustmentRoleSupplier})
	assert.Contains(t, got, resolved{f.supplierItemFee.ID, types.AdjustmentRoleDistributor})
}

func TestFeeResolver_PerItemFeesFor(t *testing.T) {
	f := newResolverFixture()
	r := NewFeeResolver(testDistributorID, f.orderCycle)

	got := pairs(r.PerItemFeesFor(f.variantA))
	assert.Equal(t, []resolved{
		{f.supplierItemFee.ID, types.AdjustmentRoleSupplier},
		{f.distributorItemFee.ID, types.AdjustmentRoleDistributor},
		{f.coordinatorItemFee.ID, types.AdjustmentRoleCoordinator},
	}, got)
}

func TestFeeResolver_MemoisesPerVariant(t *testing.T) {
	f := newResolverFixture()
	r := NewFeeResolver(testDistributorID, f.orderCycle)

	first := r.AllFeesFor(f.variantA)
	// changes after the first lookup are not seen within the same pass
	f.distributorLeg.EnterpriseFees = nil
	second := r.AllFeesFor(f.variantA)

	assert.Equal(t, pairs(first), pairs(second))
	assert.Len(t, r.byVariant, 1)
}

func TestFeeResolver_PerOrderFees(t *testing.T) {
	f := newResolverFixture()
	r := NewFeeResolver(testDistributorID, f.orderCycle)

	t.Run("deduplicated across line items", func(t *testing.T) {
		o := &order.Order{LineItems: []*order.LineItem{
			{ID: "li_1", VariantID: f.variantA},
			{ID: "li_2", VariantID: f.variantA},
			{ID: "li_3", VariantID: f.variantB},
		}}

		got := pairs(r.PerOrderFees(o))
		assert.Equal(t, []resolved{
			{f.supplierOrderFee.ID, types.AdjustmentRoleSupplier},
			{f.coordinatorOrderFee.ID, types.AdjustmentRoleCoordinator},
		}, got)
	})

	t.Run("coordinator fees apply to an empty order", func(t *testing.T) {
		got := pairs(r.PerOrderFees(&order.Order{}))
		assert.Equal(t, []resolved{
			{f.coordinatorOrderFee.ID, types.AdjustmentRoleCoordinator},
		}, got)
	})
}

func TestFeeResolver_DistributesVariant(t *testing.T) {
	f := newResolverFixture()
	r := NewFeeResolver(testDistributorID, f.orderCycle)

	assert.True(t, r.DistributesVariant(f.variantA))
	assert.False(t, r.DistributesVariant("var_unknown"))

	assert.False(t, NewFeeResolver("ent_nobody", f.orderCycle).DistributesVariant(f.variantA))
}

func TestFeeResolver_WithoutOrderCycle(t *testing.T) {
	r := NewFeeResolver("", nil)

	assert.Empty(t, r.AllFeesFor("var_a"))
	assert.Empty(t, r.PerOrderFees(&order.Order{LineItems: []*order.LineItem{{VariantID: "var_a"}}}))
	assert.False(t, r.DistributesVariant("var_a"))
}

func TestFeeApplicator(t *testing.T) {
	fee := testFee("Packing", types.CalculatorTypePerItem)
	fee.InheritsTaxCategory = true
	a := FeeApplicator{Fee: fee, Role: types.AdjustmentRoleSupplier}

	v := newTestVariant(testFoodCategory)
	li := newTestLineItem(v, 4, "2.00")
	li.OrderID = "ord_1"
	ctx := testutil.SetupContext()

	t.Run("label", func(t *testing.T) {
		assert.Equal(t, "Packing fee by supplier Green Farm", a.Label())
	})

	t.Run("delisted variant gets nothing", func(t *testing.T) {
		adj, err := a.CreateLineItemAdjustment(ctx, li, false)
		require.NoError(t, err)
		assert.Nil(t, adj)
	})

	t.Run("line item adjustment inherits the product category", func(t *testing.T) {
		adj, err := a.CreateLineItemAdjustment(ctx, li, true)
		require.NoError(t, err)
		require.NotNil(t, adj)

		assert.Equal(t, types.OriginatorTypeEnterpriseFee, adj.OriginatorType)
		assert.Equal(t, fee.ID, adj.OriginatorID)
		assert.Equal(t, types.AdjustableTypeLineItem, adj.AdjustableType)
		assert.Equal(t, li.ID, adj.AdjustableID)
		assert.Equal(t, testFoodCategory, adj.TaxCategoryID)
		assert.True(t, decimal.NewFromInt(4).Equal(adj.Amount))
	})

	t.Run("update reports whether anything changed", func(t *testing.T) {
		adj, err := a.CreateLineItemAdjustment(ctx, li, true)
		require.NoError(t, err)

		changed, err := a.UpdateAdjustment(adj, li)
		require.NoError(t, err)
		assert.False(t, changed)

		li.Quantity = 5
		changed, err = a.UpdateAdjustment(adj, li)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, decimal.NewFromInt(5).Equal(adj.Amount))
	})

	t.Run("order adjustment follows the fee's own category", func(t *testing.T) {
		admin := FeeApplicator{Fee: testFee("Admin", types.CalculatorTypeFlatRate), Role: types.AdjustmentRoleCoordinator}
		o := &order.Order{ID: "ord_1", LineItems: []*order.LineItem{li}}

		adj, err := admin.CreateOrderAdjustment(ctx, o)
		require.NoError(t, err)
		assert.Empty(t, adj.TaxCategoryID)

		admin.Fee.TaxCategoryID = testServiceCategory
		changed, err := admin.UpdateAdjustment(adj, o)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, testServiceCategory, adj.TaxCategoryID)
	})

	t.Run("finalized adjustments are not recomputed", func(t *testing.T) {
		adj, err := a.CreateLineItemAdjustment(ctx, li, true)
		require.NoError(t, err)
		adj.State = types.AdjustmentStateFinalized

		li.Quantity = 9
		changed, err := a.UpdateAdjustment(adj, li)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}
