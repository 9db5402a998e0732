package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the transaction log.
// The log is append-only: entries are never updated or deleted.
type LedgerRepository interface {
	// Append persists new entries in the order given.
	Append(ctx context.Context, entries ...*ledger.Entry) error
}
