package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderAllocationJob *OrderAllocationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	allocatePendingHandler commands.AllocatePendingOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderAllocationJob: NewOrderAllocationJob(allocatePendingHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAllocationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order allocation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderAllocationJob.Stop()
}
