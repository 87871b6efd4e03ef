package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
	_ "github.com/harvestlane/backoffice/docs/swagger"
	"github.com/harvestlane/backoffice/internal/api"
	v1 "github.com/harvestlane/backoffice/internal/api/v1"
	"github.com/harvestlane/backoffice/internal/cache"
	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/locker"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
	"github.com/harvestlane/backoffice/internal/publisher"
	"github.com/harvestlane/backoffice/internal/pubsub"
	"github.com/harvestlane/backoffice/internal/pubsub/kafka"
	"github.com/harvestlane/backoffice/internal/pubsub/memory"
	pubsubRouter "github.com/harvestlane/backoffice/internal/pubsub/router"
	"github.com/harvestlane/backoffice/internal/pyroscope"
	"github.com/harvestlane/backoffice/internal/repository"
	"github.com/harvestlane/backoffice/internal/sentry"
	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/temporal"
	"github.com/harvestlane/backoffice/internal/types"
	"github.com/harvestlane/backoffice/internal/validator"
	"go.uber.org/fx"
)

// @title Harvestlane Backoffice API
// @version 1.0
// @description Enterprise fee and tax adjustment engine
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey TenantHeader
// @in header
// @name X-Tenant-ID
// @description Tenant the request acts for

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			postgres.NewSentryClient,
			fx.Annotate(postgres.NewOrderLocker, fx.As(new(locker.Locker))),

			// Repositories
			repository.NewOrderRepository,
			repository.NewAdjustmentRepository,
			repository.NewEnterpriseFeeRepository,
			repository.NewOrderCycleRepository,
			repository.NewTaxRateRepository,

			// PubSub
			providePubSub,
			publisher.NewFeeEventPublisher,
			pubsubRouter.NewRouter,

			// Temporal
			temporal.NewTemporalClient,
			provideFeeRecalculationTrigger,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewFeeSynchronizer,
			service.NewEnterpriseFeeService,
			service.NewCalculatorService,
			service.NewFeeRecalculationService,
		),
	)

	// API and workers
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
			temporal.NewWorker,
		),
		fx.Invoke(
			validator.NewValidator,
			sentry.RegisterHooks,
			migrateOnStart,
			startServer,
		),
	)

	// Profiling
	opts = append(opts, pyroscope.Module())

	app := fx.New(opts...)
	app.Run()
}

func providePubSub(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (pubsub.PubSub, error) {
	var (
		ps  pubsub.PubSub
		err error
	)

	switch cfg.PubSub.Backend {
	case types.PubSubBackendKafka:
		ps, err = kafka.NewPubSub(cfg, log)
		if err != nil {
			return nil, err
		}
	default:
		ps = memory.NewPubSub(log)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return ps.Close()
		},
	})
	return ps, nil
}

// provideFeeRecalculationTrigger hands fee change recalculation to temporal when it is
// enabled. The nil trigger makes the recalculation service work in process.
func provideFeeRecalculationTrigger(
	client *temporal.TemporalClient,
	cfg *config.Configuration,
	log *logger.Logger,
) service.FeeRecalculationTrigger {
	return temporal.NewFeeRecalculationTrigger(client, cfg.Temporal.TaskQueue, log)
}

func provideHandlers(
	logger *logger.Logger,
	synchronizer service.FeeSynchronizer,
	enterpriseFeeService service.EnterpriseFeeService,
	calculatorService service.CalculatorService,
) api.Handlers {
	return api.Handlers{
		Health:        v1.NewHealthHandler(logger),
		OrderFee:      v1.NewOrderFeeHandler(synchronizer, logger),
		EnterpriseFee: v1.NewEnterpriseFeeHandler(enterpriseFeeService, logger),
		Calculator:    v1.NewCalculatorHandler(calculatorService, logger),
	}
}

func migrateOnStart(db *postgres.DB, cfg *config.Configuration, log *logger.Logger) error {
	if !cfg.Postgres.AutoMigrate {
		return nil
	}
	log.Info("running database migrations")
	return db.Migrate()
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	ps pubsub.PubSub,
	recalculation service.FeeRecalculationService,
	worker *temporal.Worker,
	db *postgres.DB,
	profiler *pyroscope.Service,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startMessageRouter(lc, router, ps, recalculation, profiler, cfg, log)
		worker.RegisterWithLifecycle(lc)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeWorker:
		startMessageRouter(lc, router, ps, recalculation, profiler, cfg, log)
		worker.RegisterWithLifecycle(lc)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down API server")
			return srv.Shutdown(ctx)
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	router *pubsubRouter.Router,
	subscriber pubsub.Subscriber,
	recalculation service.FeeRecalculationService,
	profiler *pyroscope.Service,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	// Register handlers before starting the router
	router.AddNoPublishHandler(
		"fee_recalculation",
		cfg.Fees.FeeChangeTopic,
		subscriber,
		func(msg *message.Message) error {
			var err error
			profiler.TagWrapper(msg.Context(), map[string]string{"handler": "fee_recalculation"}, func(ctx context.Context) {
				err = recalculation.HandleFeeChange(msg)
			})
			return err
		},
	)

	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting message router")
			go func() {
				if err := router.Run(runCtx); err != nil {
					log.Errorw("message router failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping message router")
			cancel()
			return router.Close()
		},
	})
}
