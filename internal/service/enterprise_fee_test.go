package service

import (
	"testing"

	"github.com/harvestlane/backoffice/internal/api/dto"
	"github.com/harvestlane/backoffice/internal/domain/calculator"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type EnterpriseFeeServiceSuite struct {
	serviceTestSuite
	service EnterpriseFeeService
}

func TestEnterpriseFeeService(t *testing.T) {
	suite.Run(t, new(EnterpriseFeeServiceSuite))
}

func (s *EnterpriseFeeServiceSuite) SetupTest() {
	s.serviceTestSuite.SetupTest()
	s.service = NewEnterpriseFeeService(s.params)
}

func packingFeeRequest() dto.CreateEnterpriseFeeRequest {
	return dto.CreateEnterpriseFeeRequest{
		EnterpriseID: testSupplierID,
		Name:         "Packing",
		FeeType:      types.FeeTypePacking,
		Calc: dto.CalculatorRequest{
			Type:        types.CalculatorTypePerItem,
			Preferences: calculator.RawPreferences{Amount: "0.50"},
		},
		InheritsTaxCategory: true,
	}
}

func (s *EnterpriseFeeServiceSuite) TestCreateEnterpriseFee() {
	tests := []struct {
		name    string
		req     func() dto.CreateEnterpriseFeeRequest
		wantErr func(error) bool
	}{
		{
			name: "per item fee",
			req:  packingFeeRequest,
		},
		{
			name: "missing name",
			req: func() dto.CreateEnterpriseFeeRequest {
				req := packingFeeRequest()
				req.Name = ""
				return req
			},
			wantErr: ierr.IsValidation,
		},
		{
			name: "unknown fee type",
			req: func() dto.CreateEnterpriseFeeRequest {
				req := packingFeeRequest()
				req.FeeType = types.FeeType("bribe")
				return req
			},
			wantErr: ierr.IsValidation,
		},
		{
			name: "non numeric preference",
			req: func() dto.CreateEnterpriseFeeRequest {
				req := packingFeeRequest()
				req.Calc.Preferences.Amount = "a lot"
				return req
			},
			wantErr: ierr.IsValidation,
		},
		{
			name: "per order fee inheriting a tax category",
			req: func() dto.CreateEnterpriseFeeRequest {
				req := packingFeeRequest()
				req.Calc = dto.CalculatorRequest{
					Type:        types.CalculatorTypeFlatRate,
					Preferences: calculator.RawPreferences{Amount: "5"},
				}
				return req
			},
			wantErr: ierr.IsConfiguration,
		},
		{
			name: "tax calculator",
			req: func() dto.CreateEnterpriseFeeRequest {
				req := packingFeeRequest()
				req.InheritsTaxCategory = false
				req.Calc = dto.CalculatorRequest{
					Type:        types.CalculatorTypeDefaultTax,
					Preferences: calculator.RawPreferences{TaxRate: "0.1"},
				}
				return req
			},
			wantErr: ierr.IsConfiguration,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.GetStores().EnterpriseFeeRepo.Clear()

			resp, err := s.service.CreateEnterpriseFee(s.GetContext(), tt.req())
			if tt.wantErr != nil {
				s.Error(err)
				s.True(tt.wantErr(err), "unexpected error %v", err)
				s.Nil(resp)
				s.Equal(0, s.GetStores().EnterpriseFeeRepo.Len())
				return
			}

			s.Require().NoError(err)
			s.NotEmpty(resp.ID)
			s.Equal("Packing", resp.Name)
			s.Equal(types.StatusPublished, resp.Status)
			s.False(resp.PerOrder)
			s.Equal("0.5", resp.Calculator.Preferences.Amount.String())

			stored, err := s.GetStores().EnterpriseFeeRepo.Get(s.GetContext(), resp.ID)
			s.Require().NoError(err)
			s.True(stored.InheritsTaxCategory)
		})
	}
}

func (s *EnterpriseFeeServiceSuite) TestGetAndListEnterpriseFees() {
	packing := s.perItemPercentFee("Packing", testSupplierID, "10")
	s.perItemPercentFee("Handling", testDistributorID, "5")
	deleted := s.flatOrderFee("Retired", testSupplierID, "1")
	s.Require().NoError(s.GetStores().EnterpriseFeeRepo.Delete(s.GetContext(), deleted.ID))

	resp, err := s.service.GetEnterpriseFee(s.GetContext(), packing.ID)
	s.Require().NoError(err)
	s.Equal(packing.ID, resp.ID)

	_, err = s.service.GetEnterpriseFee(s.GetContext(), deleted.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetEnterpriseFee(s.GetContext(), "")
	s.True(ierr.IsValidation(err))

	list, err := s.service.ListEnterpriseFees(s.GetContext(), &types.EnterpriseFeeFilter{EnterpriseID: testSupplierID})
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal(packing.ID, list.Items[0].ID)

	list, err = s.service.ListEnterpriseFees(s.GetContext(), &types.EnterpriseFeeFilter{})
	s.Require().NoError(err)
	s.Len(list.Items, 2)
}

func (s *EnterpriseFeeServiceSuite) TestUpdateEnterpriseFee() {
	fee := s.perItemPercentFee("Packing", testSupplierID, "10")

	resp, err := s.service.UpdateEnterpriseFee(s.GetContext(), fee.ID, dto.UpdateEnterpriseFeeRequest{
		Name: lo.ToPtr("Boxing"),
		Calc: &dto.CalculatorRequest{
			Type:        types.CalculatorTypeFlatPercentPerItem,
			Preferences: calculator.RawPreferences{Percent: "12.5"},
		},
	})
	s.Require().NoError(err)
	s.Equal("Boxing", resp.Name)
	s.Equal(fee.Calculator.ID, resp.Calculator.ID, "same kind keeps the calculator id")
	s.Equal("12.5", resp.Calculator.Preferences.Percent.String())

	events, err := s.GetPubSub().FeeEvents(s.GetConfig().Fees.FeeChangeTopic)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(types.EventEnterpriseFeeSaved, events[0].EventName)
	s.Equal(fee.ID, events[0].EnterpriseFeeID)

	s.Run("invalid combination is rejected and not announced", func() {
		_, err := s.service.UpdateEnterpriseFee(s.GetContext(), fee.ID, dto.UpdateEnterpriseFeeRequest{
			Calc: &dto.CalculatorRequest{
				Type:        types.CalculatorTypePriceSack,
				Preferences: calculator.RawPreferences{MinimalAmount: "10", NormalAmount: "2", DiscountAmount: "1"},
			},
			InheritsTaxCategory: lo.ToPtr(true),
		})
		s.True(ierr.IsConfiguration(err), "unexpected error %v", err)

		stored, err := s.GetStores().EnterpriseFeeRepo.Get(s.GetContext(), fee.ID)
		s.Require().NoError(err)
		s.Equal(types.CalculatorTypeFlatPercentPerItem, stored.Calculator.Type)

		events, err := s.GetPubSub().FeeEvents(s.GetConfig().Fees.FeeChangeTopic)
		s.Require().NoError(err)
		s.Len(events, 1)
	})

	s.Run("blank name", func() {
		_, err := s.service.UpdateEnterpriseFee(s.GetContext(), fee.ID, dto.UpdateEnterpriseFeeRequest{Name: lo.ToPtr("")})
		s.True(ierr.IsValidation(err))
	})

	s.Run("unknown fee", func() {
		_, err := s.service.UpdateEnterpriseFee(s.GetContext(), "fee_missing", dto.UpdateEnterpriseFeeRequest{Name: lo.ToPtr("x")})
		s.True(ierr.IsNotFound(err))
	})
}

func (s *EnterpriseFeeServiceSuite) TestDeleteEnterpriseFee() {
	fee := s.perItemPercentFee("Packing", testSupplierID, "10")

	s.Require().NoError(s.service.DeleteEnterpriseFee(s.GetContext(), fee.ID))

	_, err := s.GetStores().EnterpriseFeeRepo.Get(s.GetContext(), fee.ID)
	s.True(ierr.IsNotFound(err))

	events, err := s.GetPubSub().FeeEvents(s.GetConfig().Fees.FeeChangeTopic)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(fee.ID, events[0].EnterpriseFeeID)

	s.True(ierr.IsNotFound(s.service.DeleteEnterpriseFee(s.GetContext(), fee.ID)))
	s.True(ierr.IsValidation(s.service.DeleteEnterpriseFee(s.GetContext(), "")))
}
