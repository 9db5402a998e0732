package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// allocationSchedule sweeps twice a minute. Frequent enough that freshly
// received stock reaches waiting orders quickly, infrequent enough that
// sweeps do not pile up behind row locks.
const allocationSchedule = "*/30 * * * * *"

// OrderAllocationJob manages the scheduled allocation of pending orders.
// Each run sweeps all orders still awaiting stock, oldest first.
type OrderAllocationJob struct {
	handler commands.AllocatePendingOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderAllocationJob creates a new job for allocating pending orders.
func NewOrderAllocationJob(
	handler commands.AllocatePendingOrdersCommandHandler,
	logger *slog.Logger,
) *OrderAllocationJob {
	return &OrderAllocationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_allocation_job"),
	}
}

// Start begins the periodic allocation sweep.
func (j *OrderAllocationJob) Start() error {
	_, err := j.cron.AddFunc(allocationSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewAllocatePendingOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order allocation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order allocation job started")
	return nil
}

// Stop stops the allocation job.
func (j *OrderAllocationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order allocation job stopped")
}
