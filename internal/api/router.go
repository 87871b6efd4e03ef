package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/harvestlane/backoffice/internal/api/v1"
	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/rest/middleware"
	"github.com/harvestlane/backoffice/internal/types"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health        *v1.HealthHandler
	OrderFee      *v1.OrderFeeHandler
	EnterpriseFee *v1.EnterpriseFeeHandler
	Calculator    *v1.CalculatorHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.PyroscopeMiddleware(cfg),
		middleware.ErrorHandler(logger),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1Router := router.Group("/v1")
	v1Router.Use(middleware.TenantMiddleware(logger))
	registerV1Routes(v1Router, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	orders := router.Group("/orders")
	{
		orders.POST("/:id/fees/recreate", handlers.OrderFee.RecreateAllFees)
		orders.POST("/:id/fees/refresh", handlers.OrderFee.UpdateOrderFees)
		orders.DELETE("/:id/fees", handlers.OrderFee.RemoveOrderCycleFees)
	}

	router.POST("/line_items/:id/fees/refresh", handlers.OrderFee.UpdateLineItemFees)

	fees := router.Group("/enterprise_fees")
	{
		fees.POST("", handlers.EnterpriseFee.CreateEnterpriseFee)
		fees.GET("", handlers.EnterpriseFee.ListEnterpriseFees)
		fees.GET("/:id", handlers.EnterpriseFee.GetEnterpriseFee)
		fees.PUT("/:id", handlers.EnterpriseFee.UpdateEnterpriseFee)
		fees.DELETE("/:id", handlers.EnterpriseFee.DeleteEnterpriseFee)
	}

	calculators := router.Group("/calculators")
	{
		calculators.POST("/preview", handlers.Calculator.Preview)
		calculators.POST("/estimate", handlers.Calculator.EstimateVariantFees)
	}
}
