package service

import (
	"context"

	"github.com/harvestlane/backoffice/internal/api/dto"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/publisher"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/samber/lo"
)

// EnterpriseFeeService manages fee configuration. Saving or deleting a fee announces the
// change so orders in the affected order cycles get resynchronized in the background.
type EnterpriseFeeService interface {
	CreateEnterpriseFee(ctx context.Context, req dto.CreateEnterpriseFeeRequest) (*dto.EnterpriseFeeResponse, error)
	GetEnterpriseFee(ctx context.Context, id string) (*dto.EnterpriseFeeResponse, error)
	ListEnterpriseFees(ctx context.Context, filter *types.EnterpriseFeeFilter) (*dto.ListEnterpriseFeesResponse, error)
	UpdateEnterpriseFee(ctx context.Context, id string, req dto.UpdateEnterpriseFeeRequest) (*dto.EnterpriseFeeResponse, error)
	DeleteEnterpriseFee(ctx context.Context, id string) error
}

type enterpriseFeeService struct {
	ServiceParams
}

func NewEnterpriseFeeService(params ServiceParams) EnterpriseFeeService {
	return &enterpriseFeeService{
		ServiceParams: params,
	}
}

func (s *enterpriseFeeService) CreateEnterpriseFee(ctx context.Context, req dto.CreateEnterpriseFeeRequest) (*dto.EnterpriseFeeResponse, error) {
	if err := req.Validate(); err != nil {
		s.Logger.Warnw("enterprise fee creation validation failed",
			"error", err,
			"enterprise_id", req.EnterpriseID,
			"name", req.Name,
		)
		return nil, err
	}

	fee, err := req.ToEnterpriseFee(ctx)
	if err != nil {
		return nil, err
	}
	if err := fee.Validate(); err != nil {
		return nil, err
	}

	var created *enterprisefee.EnterpriseFee
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.EnterpriseFeeRepo.Create(ctx, fee); err != nil {
			return err
		}
		// reload for the enterprise name
		created, err = s.EnterpriseFeeRepo.Get(ctx, fee.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created enterprise fee",
		"fee_id", created.ID,
		"enterprise_id", created.EnterpriseID,
		"calculator_type", created.Calculator.Type,
	)
	return dto.NewEnterpriseFeeResponse(created), nil
}

func (s *enterpriseFeeService) GetEnterpriseFee(ctx context.Context, id string) (*dto.EnterpriseFeeResponse, error) {
	if id == "" {
		return nil, ierr.NewError("enterprise_fee_id is required").
			WithHint("Enterprise fee ID is required").
			Mark(ierr.ErrValidation)
	}

	fee, err := s.EnterpriseFeeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewEnterpriseFeeResponse(fee), nil
}

func (s *enterpriseFeeService) ListEnterpriseFees(ctx context.Context, filter *types.EnterpriseFeeFilter) (*dto.ListEnterpriseFeesResponse, error) {
	fees, err := s.EnterpriseFeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListEnterpriseFeesResponse{
		Items: lo.Map(fees, func(fee *enterprisefee.EnterpriseFee, _ int) *dto.EnterpriseFeeResponse {
			return dto.NewEnterpriseFeeResponse(fee)
		}),
	}, nil
}

func (s *enterpriseFeeService) UpdateEnterpriseFee(ctx context.Context, id string, req dto.UpdateEnterpriseFeeRequest) (*dto.EnterpriseFeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var fee *enterprisefee.EnterpriseFee
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		fee, err = s.EnterpriseFeeRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := req.Apply(fee); err != nil {
			return err
		}
		if err := fee.Validate(); err != nil {
			return err
		}
		return s.EnterpriseFeeRepo.Update(ctx, fee)
	})
	if err != nil {
		s.Logger.Warnw("failed to update enterprise fee",
			"fee_id", id,
			"error", err,
		)
		return nil, err
	}

	s.Logger.Infow("updated enterprise fee",
		"fee_id", fee.ID,
		"calculator_type", fee.Calculator.Type,
	)
	s.announce(ctx, fee.ID)
	return dto.NewEnterpriseFeeResponse(fee), nil
}

func (s *enterpriseFeeService) DeleteEnterpriseFee(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("enterprise_fee_id is required").
			WithHint("Enterprise fee ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := s.EnterpriseFeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted enterprise fee", "fee_id", id)
	s.announce(ctx, id)
	return nil
}

// announce publishes the change once it is committed. Failures are logged only.
func (s *enterpriseFeeService) announce(ctx context.Context, feeID string) {
	if s.FeeEventPublisher == nil {
		return
	}

	event := publisher.NewFeeEvent(ctx, types.EventEnterpriseFeeSaved)
	event.EnterpriseFeeID = feeID

	if err := s.FeeEventPublisher.PublishFeeChange(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish enterprise fee change",
			"fee_id", feeID,
			"error", err,
		)
	}
}
