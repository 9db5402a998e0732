// Package ledger contains the append-only stock transaction log.
//
// Every stock movement writes an Entry: receiving creates positive Receive
// entries, allocation writes Reserve, deallocation writes Return, shipping
// writes Ship, and pick/pack discrepancies write Adjust. Entries are
// immutable values; together with batch available quantities they form the
// authoritative stock state consumed by reporting collaborators.
package ledger
