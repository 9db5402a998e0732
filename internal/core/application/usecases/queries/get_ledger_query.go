package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	defaultLedgerLimit = 100
	maxLedgerLimit     = 1000
)

var (
	ErrGetLedgerQueryIsNotConstructed = errors.New(
		"GetLedgerQuery must be created via NewGetLedgerQuery constructor",
	)
)

// GetLedgerQuery retrieves transaction log entries, newest first.
// Any combination of order, batch and entry type filters may be applied;
// an empty filter returns the most recent entries across the whole log.
//
// Example:
//
//	query, err := NewGetLedgerQuery(&orderID, nil, ledger.Ship, 50)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetLedgerQueryHandler(db)
//
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get ledger: %w", err)
//	}
type GetLedgerQuery struct {
	orderID   *kernel.UUID
	batchID   *kernel.UUID
	entryType ledger.EntryType
	limit     int

	guard guard.ConstructorGuard
}

// NewGetLedgerQuery creates a filtered log query. Nil order and batch
// identifiers and ledger.UnknownType mean "no filter". A non-positive
// limit falls back to the default, an excessive one is rejected.
func NewGetLedgerQuery(
	orderID *kernel.UUID,
	batchID *kernel.UUID,
	entryType ledger.EntryType,
	limit int,
) (GetLedgerQuery, error) {
	query := GetLedgerQuery{guard: guard.NewConstructorGuard()}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return GetLedgerQuery{}, err
		}
		query.orderID = orderID
	}
	if batchID != nil {
		if err := batchID.Validate(); err != nil {
			return GetLedgerQuery{}, err
		}
		query.batchID = batchID
	}
	if entryType != ledger.UnknownType {
		if err := entryType.Validate(); err != nil {
			return GetLedgerQuery{}, err
		}
	}
	query.entryType = entryType

	if limit <= 0 {
		limit = defaultLedgerLimit
	}
	if limit > maxLedgerLimit {
		return GetLedgerQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxLedgerLimit)
	}
	query.limit = limit

	return query, nil
}

// OrderID returns the order filter, or nil when unfiltered.
func (q GetLedgerQuery) OrderID() *kernel.UUID {
	return q.orderID
}

// BatchID returns the batch filter, or nil when unfiltered.
func (q GetLedgerQuery) BatchID() *kernel.UUID {
	return q.batchID
}

// EntryType returns the type filter, or ledger.UnknownType when unfiltered.
func (q GetLedgerQuery) EntryType() ledger.EntryType {
	return q.entryType
}

// Limit returns the maximum number of entries to load.
func (q GetLedgerQuery) Limit() int {
	return q.limit
}

// Validate ensures the query was created through the constructor.
func (q GetLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerQueryIsNotConstructed)
}

// GetLedgerQueryResponse is one transaction log entry read model.
type GetLedgerQueryResponse struct {
	ID         kernel.UUID
	EntryType  string
	Qty        decimal.Decimal
	ItemID     kernel.UUID
	BatchID    kernel.UUID
	OrderID    *kernel.UUID
	ShipmentID *kernel.UUID
	Actor      string
	Note       string
	OccurredAt time.Time
}
