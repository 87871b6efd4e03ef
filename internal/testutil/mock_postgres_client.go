package testutil

import (
	"context"
	"sync"

	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

type mockTxKey struct{}

// MockPostgresClient gives in-memory stores transaction semantics: when the outermost
// WithTx returns an error every registered store is put back as it was.
type MockPostgresClient struct {
	logger *logger.Logger
	stores []Snapshotter
	mu     sync.Mutex

	// Commits and Rollbacks count finished outermost transactions
	Commits   int
	Rollbacks int
}

// NewMockPostgresClient creates a new mock postgres client over the given stores
func NewMockPostgresClient(logger *logger.Logger, stores ...Snapshotter) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
		stores: stores,
	}
}

// WithTx executes fn within a transaction, joining the one already in ctx
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(mockTxKey{}) != nil {
		return fn(ctx)
	}

	restores := make([]func(), 0, len(c.stores))
	for _, s := range c.stores {
		restores = append(restores, s.Snapshot())
	}

	if err := fn(context.WithValue(ctx, mockTxKey{}, true)); err != nil {
		for _, restore := range restores {
			restore()
		}
		c.mu.Lock()
		c.Rollbacks++
		c.mu.Unlock()
		c.logger.Debugw("rolled back mock transaction", "error", err)
		return err
	}

	c.mu.Lock()
	c.Commits++
	c.mu.Unlock()
	return nil
}
