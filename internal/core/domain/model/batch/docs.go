// Package batch contains the stock batch (lot) entity.
//
// A batch is a received quantity of one item under a lot number, with an
// optional expiry date. Batches carry the actual stock: availableQty is the
// portion not yet reserved or consumed, and every allocation decision takes
// stock from a specific batch.
//
// Key invariants:
//   - 0 <= availableQty <= receivedQty at all times
//   - only Available, unexpired batches with availableQty > 0 are eligible
//     for allocation; a batch without an expiry date never expires
//
// The batch status is a value object with explicit transitions
// (Available, Quarantine, Expired).
package batch
