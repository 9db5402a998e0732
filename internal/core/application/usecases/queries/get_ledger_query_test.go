package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetLedgerQuery_Valid(t *testing.T) {
	orderID := kernel.NewUUID()
	batchID := kernel.NewUUID()

	query, err := queries.NewGetLedgerQuery(&orderID, &batchID, ledger.Ship, 50)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, &orderID, query.OrderID())
	assert.Equal(t, &batchID, query.BatchID())
	assert.Equal(t, ledger.Ship, query.EntryType())
	assert.Equal(t, 50, query.Limit())
}

func TestNewGetLedgerQuery_Unfiltered(t *testing.T) {
	query, err := queries.NewGetLedgerQuery(nil, nil, ledger.UnknownType, 0)

	require.NoError(t, err)
	assert.Nil(t, query.OrderID())
	assert.Nil(t, query.BatchID())
	assert.Equal(t, ledger.UnknownType, query.EntryType())
	assert.Equal(t, 100, query.Limit(), "non-positive limit falls back to the default")
}

func TestNewGetLedgerQuery_LimitTooLarge(t *testing.T) {
	_, err := queries.NewGetLedgerQuery(nil, nil, ledger.UnknownType, 5000)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetLedgerQuery_InvalidOrderID(t *testing.T) {
	var empty kernel.UUID

	_, err := queries.NewGetLedgerQuery(&empty, nil, ledger.UnknownType, 0)

	require.Error(t, err)
}

func TestGetLedgerQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetLedgerQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetLedgerQueryIsNotConstructed)
}
