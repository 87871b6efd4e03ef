package temporal

import (
	"context"

	"github.com/harvestlane/backoffice/internal/config"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/service"
	"go.temporal.io/sdk/worker"
	"go.uber.org/fx"
)

// Worker manages the Temporal worker instance.
type Worker struct {
	worker worker.Worker
	log    *logger.Logger
}

// NewWorker creates a new Temporal worker and registers workflows and activities.
// It returns nil when temporal is disabled.
func NewWorker(client *TemporalClient, cfg *config.Configuration, recalculation service.FeeRecalculationService, log *logger.Logger) *Worker {
	if !client.Enabled() {
		return nil
	}

	w := worker.New(client.Client, cfg.Temporal.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize: cfg.Fees.RecalculationConcurrency,
	})

	RegisterWorkflowsAndActivities(w, recalculation, log)

	return &Worker{
		worker: w,
		log:    log,
	}
}

// Start starts the Temporal worker.
func (w *Worker) Start() error {
	w.log.Info("Starting temporal worker...")
	return w.worker.Start()
}

// Stop stops the Temporal worker.
func (w *Worker) Stop() {
	w.log.Info("Stopping temporal worker...")
	if w.worker != nil {
		w.worker.Stop()
	}
}

// RegisterWithLifecycle registers the worker with the fx lifecycle.
func (w *Worker) RegisterWithLifecycle(lc fx.Lifecycle) {
	if w == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return w.Start()
		},
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				w.Stop()
				close(done)
			}()

			select {
			case <-done:
				w.log.Info("Temporal worker stopped successfully")
			case <-ctx.Done():
				w.log.Error("Timeout while stopping temporal worker")
			}
			return nil
		},
	})
}
