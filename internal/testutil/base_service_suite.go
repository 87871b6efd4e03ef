package testutil

import (
	"context"
	"time"

	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/locker"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/publisher"
	"github.com/harvestlane/backoffice/internal/sentry"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/harvestlane/backoffice/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories for testing
type Stores struct {
	OrderRepo         *InMemoryOrderStore
	AdjustmentRepo    *InMemoryAdjustmentStore
	EnterpriseFeeRepo *InMemoryEnterpriseFeeStore
	OrderCycleRepo    *InMemoryOrderCycleStore
	TaxRateRepo       *InMemoryTaxRateStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	pubsub    *InMemoryPubSub
	publisher publisher.FeeEventPublisher
	db        *MockPostgresClient
	locker    locker.Locker
	sentry    *sentry.Service
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Logging.Level = types.LogLevelInfo
	s.config.Fees.PublishTimeout = 50 * time.Millisecond
	s.config.Fees.RecalculationConcurrency = 2

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.sentry = sentry.NewSentryService(s.config, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	adjustments := NewInMemoryAdjustmentStore()
	fees := NewInMemoryEnterpriseFeeStore()

	s.stores = Stores{
		OrderRepo:         NewInMemoryOrderStore(adjustments),
		AdjustmentRepo:    adjustments,
		EnterpriseFeeRepo: fees,
		OrderCycleRepo:    NewInMemoryOrderCycleStore(fees),
		TaxRateRepo:       NewInMemoryTaxRateStore(),
	}

	s.db = NewMockPostgresClient(s.logger,
		s.stores.OrderRepo,
		s.stores.AdjustmentRepo,
		s.stores.EnterpriseFeeRepo,
		s.stores.OrderCycleRepo,
		s.stores.TaxRateRepo,
	)
	s.locker = locker.NewInProcess(time.Second)
	s.pubsub = NewInMemoryPubSub()
	s.publisher = publisher.NewFeeEventPublisher(s.config, s.pubsub, s.sentry, s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.OrderRepo.Clear()
	s.stores.AdjustmentRepo.Clear()
	s.stores.EnterpriseFeeRepo.Clear()
	s.stores.OrderCycleRepo.Clear()
	s.stores.TaxRateRepo.Clear()
	s.pubsub.ClearMessages()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubsub
}

func (s *BaseServiceTestSuite) GetPublisher() publisher.FeeEventPublisher {
	return s.publisher
}

func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetLocker() locker.Locker {
	return s.locker
}

func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
