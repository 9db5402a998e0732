// Package kernel contains the shared building blocks of the domain model.
//
// It provides the UUID value object used as the identity of every entity and
// aggregate in the fulfillment engine. Kernel types are immutable value
// objects with validation, safe for concurrent use, and free of any
// persistence or transport concerns.
package kernel
