package ledgerrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append persists new entries in the order given.
func (r *GormLedgerRepository) Append(ctx context.Context, entries ...*ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(entry))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
