package queries

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLedgerQueryHandler retrieves transaction log entries from the database.
// The log is append-only, so the read side never sees an entry change.
//
// Example:
//
//	handler := NewGetLedgerQueryHandler(db)
//	query, _ := NewGetLedgerQuery(nil, &batchID, ledger.UnknownType, 0)
//
//	entries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get ledger: %v", err)
//	    return err
//	}
type GetLedgerQueryHandler struct {
	db *gorm.DB
}

// NewGetLedgerQueryHandler creates a handler for transaction log queries.
func NewGetLedgerQueryHandler(db *gorm.DB) GetLedgerQueryHandler {
	return GetLedgerQueryHandler{db: db}
}

// Handle executes the query and returns matching entries, newest first.
// Entries sharing a timestamp are ordered by ID for stable pagination.
func (h GetLedgerQueryHandler) Handle(
	ctx context.Context,
	query GetLedgerQuery,
) ([]GetLedgerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if query.OrderID() != nil {
		conditions = append(conditions, "order_id = ?")
		args = append(args, query.OrderID().Bytes())
	}
	if query.BatchID() != nil {
		conditions = append(conditions, "batch_id = ?")
		args = append(args, query.BatchID().Bytes())
	}
	if query.EntryType() != ledger.UnknownType {
		conditions = append(conditions, "entry_type = ?")
		args = append(args, query.EntryType().String())
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			entry_type,
			qty,
			item_id,
			batch_id,
			order_id,
			shipment_id,
			actor,
			note,
			occurred_at
		FROM ledger_entries
		`+where+`
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetLedgerQueryResponse, 0)
	for rows.Next() {
		var entry GetLedgerQueryResponse
		var id, itemID, batchID uuid.UUID
		var orderID, shipmentID *uuid.UUID
		var occurredAt time.Time

		err = rows.Scan(
			&id,
			&entry.EntryType,
			&entry.Qty,
			&itemID,
			&batchID,
			&orderID,
			&shipmentID,
			&entry.Actor,
			&entry.Note,
			&occurredAt,
		)
		if err != nil {
			return nil, err
		}

		entry.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		entry.ItemID, err = kernel.UUIDFromBytes(itemID[:])
		if err != nil {
			return nil, err
		}
		entry.BatchID, err = kernel.UUIDFromBytes(batchID[:])
		if err != nil {
			return nil, err
		}
		entry.OrderID, err = optionalUUID(orderID)
		if err != nil {
			return nil, err
		}
		entry.ShipmentID, err = optionalUUID(shipmentID)
		if err != nil {
			return nil, err
		}
		entry.OccurredAt = occurredAt
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
