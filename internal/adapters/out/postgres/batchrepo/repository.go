package batchrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/batch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchRepository implements BatchRepository using GORM.
//
// Availability writes are guarded two ways: reads intended for mutation
// take row-level locks (FOR UPDATE), and the write itself is conditional
// on the availability observed at load time. The second guard turns any
// race that slipped past the first into a retryable
// ConcurrentModificationError instead of a lost update.
type GormBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBatchRepository creates a new GORM batch repository.
func NewGormBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormBatchRepository {
	return &GormBatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a freshly received batch to the database.
func (r *GormBatchRepository) Add(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a batch by ID without locking.
func (r *GormBatchRepository) Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves the given batches and locks their rows until the
// enclosing transaction completes. Rows are locked in ID order so two
// transactions touching the same set cannot deadlock each other.
func (r *GormBatchRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*batch.Batch, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []BatchDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id").
		Find(&dtos, "id IN ?", raw).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) != len(ids) {
		return nil, errs.NewObjectNotFoundError("batch", "one or more requested batches")
	}

	return r.toDomainAll(dtos)
}

// GetEligibleForUpdate retrieves allocation candidates for the given items
// and locks their rows. Candidates are available, unexpired as of asOf and
// hold positive stock. They come back sorted ascending by expiry date with
// never-expiring batches last, ties broken by ID, which is exactly the
// first-expired-first-out order the allocator consumes them in.
func (r *GormBatchRepository) GetEligibleForUpdate(
	ctx context.Context,
	itemIDs []kernel.UUID,
	asOf time.Time,
) (map[kernel.UUID][]*batch.Batch, error) {
	if len(itemIDs) == 0 {
		return map[kernel.UUID][]*batch.Batch{}, nil
	}

	raw := make([]uuid.UUID, 0, len(itemIDs))
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []BatchDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_id IN ?", raw).
		Where("status = ?", batch.Available.String()).
		Where("available_qty > 0").
		Where("expiry_date IS NULL OR expiry_date > ?", asOf).
		Order("expiry_date ASC NULLS LAST, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	candidates := make(map[kernel.UUID][]*batch.Batch, len(itemIDs))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		candidates[b.ItemID()] = append(candidates[b.ItemID()], b)
	}

	return candidates, nil
}

// UpdateAvailability writes the aggregate's availability conditional on
// the quantity it observed at load time. A zero row count means another
// transaction changed the batch since it was read.
func (r *GormBatchRepository) UpdateAvailability(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BatchDTO{}).
		Where("id = ? AND available_qty = ?", aggregate.ID().Bytes(), aggregate.ObservedQty()).
		Update("available_qty", aggregate.AvailableQty())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("batch", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus persists a batch status transition.
func (r *GormBatchRepository) UpdateStatus(ctx context.Context, aggregate *batch.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BatchDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", aggregate.Status().String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("batch", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBatchRepository) toDomainAll(dtos []BatchDTO) ([]*batch.Batch, error) {
	batches := make([]*batch.Batch, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
