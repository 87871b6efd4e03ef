package service

import (
	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/domain/ordercycle"
	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	"github.com/harvestlane/backoffice/internal/locker"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	"github.com/harvestlane/backoffice/internal/publisher"
	"github.com/harvestlane/backoffice/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Locker locker.Locker
	Sentry *sentry.Service

	// Repositories
	OrderRepo         order.Repository
	AdjustmentRepo    adjustment.Repository
	EnterpriseFeeRepo enterprisefee.Repository
	OrderCycleRepo    ordercycle.Repository
	TaxRateRepo       taxrate.Repository

	// Publishers
	FeeEventPublisher publisher.FeeEventPublisher
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	locker locker.Locker,
	sentry *sentry.Service,
	orderRepo order.Repository,
	adjustmentRepo adjustment.Repository,
	enterpriseFeeRepo enterprisefee.Repository,
	orderCycleRepo ordercycle.Repository,
	taxRateRepo taxrate.Repository,
	feeEventPublisher publisher.FeeEventPublisher,
) ServiceParams {
	return ServiceParams{
		Logger:            logger,
		Config:            config,
		DB:                db,
		Locker:            locker,
		Sentry:            sentry,
		OrderRepo:         orderRepo,
		AdjustmentRepo:    adjustmentRepo,
		EnterpriseFeeRepo: enterpriseFeeRepo,
		OrderCycleRepo:    orderCycleRepo,
		TaxRateRepo:       taxRateRepo,
		FeeEventPublisher: feeEventPublisher,
	}
}
