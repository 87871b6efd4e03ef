package service

import (
	"context"

	"github.com/harvestlane/backoffice/internal/api/dto"
)

// CalculatorService prices fees before any order exists, for product pages and admin previews
type CalculatorService interface {
	// Preview computes what a calculator would charge on hypothetical items
	Preview(ctx context.Context, req dto.CalculatorPreviewRequest) (*dto.CalculatorPreviewResponse, error)
	// EstimateVariantFees lists the per-item fees a variant would carry when bought from a
	// distributor in an order cycle
	EstimateVariantFees(ctx context.Context, req dto.EstimateVariantFeesRequest) (*dto.EstimateVariantFeesResponse, error)
}

type calculatorService struct {
	ServiceParams
}

func NewCalculatorService(params ServiceParams) CalculatorService {
	return &calculatorService{
		ServiceParams: params,
	}
}

func (s *calculatorService) Preview(ctx context.Context, req dto.CalculatorPreviewRequest) (*dto.CalculatorPreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	calc, err := req.Calc.ToCalculator()
	if err != nil {
		return nil, err
	}

	amount, err := calc.Compute(req.Subject())
	if err != nil {
		s.Logger.Warnw("calculator preview failed",
			"calculator_type", calc.Type,
			"error", err,
		)
		return nil, err
	}

	return &dto.CalculatorPreviewResponse{
		Type:     calc.Type,
		Amount:   amount,
		PerOrder: calc.IsPerOrder(),
	}, nil
}

func (s *calculatorService) EstimateVariantFees(ctx context.Context, req dto.EstimateVariantFeesRequest) (*dto.EstimateVariantFeesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	oc, err := s.OrderCycleRepo.Get(ctx, req.OrderCycleID)
	if err != nil {
		return nil, err
	}

	resolver := NewFeeResolver(req.DistributorID, oc)
	resp := &dto.EstimateVariantFeesResponse{
		Fees:        []dto.FeeEstimate{},
		Distributed: resolver.DistributesVariant(req.VariantID),
	}
	if !resp.Distributed {
		return resp, nil
	}

	subject := req.Subject()
	for _, applicator := range resolver.PerItemFeesFor(req.VariantID) {
		amount, err := applicator.compute(subject)
		if err != nil {
			return nil, err
		}
		resp.Fees = append(resp.Fees, dto.FeeEstimate{
			EnterpriseFeeID: applicator.Fee.ID,
			Label:           applicator.Label(),
			Role:            applicator.Role,
			FeeType:         applicator.Fee.FeeType,
			Amount:          amount,
		})
		resp.Total = resp.Total.Add(amount)
	}

	s.Logger.Debugw("estimated variant fees",
		"variant_id", req.VariantID,
		"distributor_id", req.DistributorID,
		"fees", len(resp.Fees),
		"total", resp.Total,
	)
	return resp, nil
}
