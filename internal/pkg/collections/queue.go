// Package collections provides the bounded, array-backed sequencing
// containers used by the allocation engine: a FIFO work queue and a LIFO
// selection stack. They are pure data structures and carry no allocation
// semantics; the allocator decides what order means.
//
// Both containers have an explicit, fixed capacity chosen by the caller.
// Overflow and underflow are caller bugs, reported via the package
// sentinels ErrCapacityExceeded and ErrEmptyContainer rather than grown
// around or silently ignored.
package collections

import "errors"

var (
	// ErrCapacityExceeded is returned when pushing or enqueuing into a full container.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrEmptyContainer is returned when popping or dequeuing from an empty container.
	ErrEmptyContainer = errors.New("empty container")
)

// Queue is a bounded FIFO queue over a circular buffer.
//
// The allocator uses it to fix the processing order of an order's lines to
// the order they were added, so repeated allocation runs visit lines
// deterministically.
type Queue[T any] struct {
	data []T
	head int
	tail int
	size int
}

// NewQueue creates a queue with the given fixed capacity.
// A non-positive capacity falls back to 16.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = 16
	}
	return &Queue[T]{data: make([]T, capacity)}
}

// Enqueue appends value at the tail.
// Returns ErrCapacityExceeded when the queue is full.
func (q *Queue[T]) Enqueue(value T) error {
	if q.size == len(q.data) {
		return ErrCapacityExceeded
	}
	q.data[q.tail] = value
	q.tail = (q.tail + 1) % len(q.data)
	q.size++
	return nil
}

// Dequeue removes and returns the value at the head.
// Returns ErrEmptyContainer when the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.size == 0 {
		return zero, ErrEmptyContainer
	}
	value := q.data[q.head]
	q.data[q.head] = zero
	q.head = (q.head + 1) % len(q.data)
	q.size--
	return value, nil
}

// Peek returns the head value without removing it.
// Returns ErrEmptyContainer when the queue is empty.
func (q *Queue[T]) Peek() (T, error) {
	var zero T
	if q.size == 0 {
		return zero, ErrEmptyContainer
	}
	return q.data[q.head], nil
}

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

// Size returns the number of elements currently queued.
func (q *Queue[T]) Size() int {
	return q.size
}
