// Package jobs provides scheduled background tasks for the fulfillment engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the allocation workflow.
//
// # Available Jobs
//
// 1. OrderAllocationJob - Periodically sweeps orders awaiting stock and
// allocates them oldest first, so orders placed earlier get first claim on
// expiring batches.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(allocatePendingHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The allocation job treats empty stock as a normal outcome: an order that
// cannot be fulfilled simply stays in the pending set for the next sweep.
// Only infrastructure failures are logged as errors.
package jobs
