package repository

import (
	"github.com/harvestlane/backoffice/internal/cache"
	"github.com/harvestlane/backoffice/internal/domain/adjustment"
	"github.com/harvestlane/backoffice/internal/domain/enterprisefee"
	"github.com/harvestlane/backoffice/internal/domain/order"
	"github.com/harvestlane/backoffice/internal/domain/ordercycle"
	"github.com/harvestlane/backoffice/internal/domain/taxrate"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	postgresRepo "github.com/harvestlane/backoffice/internal/repository/postgres"
)

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return postgresRepo.NewOrderRepository(db, logger)
}

func NewAdjustmentRepository(db *postgres.DB, logger *logger.Logger) adjustment.Repository {
	return postgresRepo.NewAdjustmentRepository(db, logger)
}

func NewEnterpriseFeeRepository(db *postgres.DB, logger *logger.Logger) enterprisefee.Repository {
	return postgresRepo.NewEnterpriseFeeRepository(db, logger)
}

func NewOrderCycleRepository(db *postgres.DB, logger *logger.Logger) ordercycle.Repository {
	return postgresRepo.NewOrderCycleRepository(db, logger)
}

func NewTaxRateRepository(db *postgres.DB, c cache.Cache, logger *logger.Logger) taxrate.Repository {
	return NewCachedTaxRateRepository(postgresRepo.NewTaxRateRepository(db, logger), c, logger)
}
