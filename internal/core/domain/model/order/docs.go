// Package order contains the Order aggregate and its lifecycle state machine.
//
// Order is the aggregate root: it exclusively owns its lines (one per
// requested item) and each line owns the live allocations that reserve batch
// stock for it. Allocations are ephemeral. They exist between allocation and
// shipment (or deallocation); once their effect is permanently recorded in
// the transaction log they are removed.
//
// The lifecycle is enforced by the Status value object:
//
//	new -> allocated -> picked -> packed -> shipped -> delivered
//
// with cancelled reachable from any non-terminal state and a direct
// shipped transition permitted from allocated and picked as well as packed.
// Illegal transitions fail with an InvalidTransitionError naming the
// operation, the order and its current status.
package order
