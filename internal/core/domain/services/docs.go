// Package services contains stateless domain services that implement
// business workflows spanning multiple aggregates.
//
// The Allocator reserves batch stock against an order's lines under the
// First-Expired-First-Out policy. It operates purely in memory on the
// aggregates handed to it; loading the candidates, locking rows and
// persisting the outcome are the caller's concern.
package services
