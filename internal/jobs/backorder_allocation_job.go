package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// BackorderAllocationJob manages the scheduled allocation of outstanding
// order lines. Runs every 30 seconds to fill backorders from stock that
// arrived since the last sweep.
type BackorderAllocationJob struct {
	handler commands.SweepBackordersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBackorderAllocationJob creates a new job for allocating backorders.
// Uses SweepBackordersCommandHandler to process allocation sweeps.
func NewBackorderAllocationJob(handler commands.SweepBackordersCommandHandler, logger *slog.Logger) *BackorderAllocationJob {
	return &BackorderAllocationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "backorder_allocation_job"),
	}
}

// Start begins the backorder allocation job to run every 30 seconds.
func (j *BackorderAllocationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepBackordersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios.
			// An empty sweep is the normal case between goods receipts, and
			// a version conflict just means an operator got there first;
			// the next sweep runs against fresh state.
			if !errors.Is(err, commands.ErrNothingToAllocate) &&
				!errors.Is(err, errs.ErrInsufficientStock) &&
				!errors.Is(err, errs.ErrConcurrencyConflict) {
				j.logger.ErrorContext(ctx, "Backorder allocation job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backorder allocation job started (running every 30 seconds)")
	return nil
}

// Stop stops the backorder allocation job.
func (j *BackorderAllocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backorder allocation job stopped")
}
