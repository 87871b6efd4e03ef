package postgres

import (
	"context"

	"github.com/harvestlane/backoffice/internal/logger"
	sentryService "github.com/harvestlane/backoffice/internal/sentry"
)

// SentryClient wraps a transaction client with Sentry span tracking
type SentryClient struct {
	client IClient
	sentry *sentryService.Service
	logger *logger.Logger
}

// NewSentryClient creates a new Sentry-instrumented Postgres client
func NewSentryClient(db *DB, sentry *sentryService.Service, logger *logger.Logger) IClient {
	return &SentryClient{
		client: db,
		sentry: sentry,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction with Sentry span tracking
func (c *SentryClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	_, nested := GetTx(ctx)
	span, spanCtx := c.sentry.StartDBSpan(ctx, "postgres.transaction", map[string]interface{}{
		"operation": "transaction",
		"nested":    nested,
	})
	defer sentryService.FinishSpan(span)

	return c.client.WithTx(spanCtx, fn)
}
