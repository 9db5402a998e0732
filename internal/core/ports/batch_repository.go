package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for stock batches.
//
// Every mutation of batch availability goes through this interface so the
// concurrency discipline lives in one place: reads for mutation lock the
// rows, and availability writes are conditional on the previously observed
// value.
type BatchRepository interface {
	// Add persists a freshly received batch.
	Add(ctx context.Context, aggregate *batch.Batch) error

	// Get retrieves a batch by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// GetForUpdate retrieves the given batches and locks their rows for
	// the duration of the enclosing transaction. Used when reversing or
	// consuming existing reservations.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*batch.Batch, error)

	// GetEligibleForUpdate retrieves the allocation candidates for the
	// given items as of asOf, sorted ascending by (expiry date, id) with
	// never-expiring batches last, and locks the rows for the duration
	// of the enclosing transaction.
	GetEligibleForUpdate(ctx context.Context, itemIDs []kernel.UUID, asOf time.Time) (map[kernel.UUID][]*batch.Batch, error)

	// UpdateAvailability writes the batch's availability conditional on
	// the quantity observed when the aggregate was loaded. Returns a
	// ConcurrentModificationError if another transaction won the race.
	UpdateAvailability(ctx context.Context, aggregate *batch.Batch) error

	// UpdateStatus persists a batch status transition.
	UpdateStatus(ctx context.Context, aggregate *batch.Batch) error
}
