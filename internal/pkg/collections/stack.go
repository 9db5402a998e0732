package collections

// Stack is a bounded LIFO stack over a fixed array.
//
// The allocator pushes batch candidates in reverse of their ascending
// (expiry, id) sort, so popping yields earliest expiry first. The reversal
// trick lives in the allocator; the stack only promises LIFO order.
type Stack[T any] struct {
	data []T
	top  int // index of the next free slot
}

// NewStack creates a stack with the given fixed capacity.
// A non-positive capacity falls back to 16.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity <= 0 {
		capacity = 16
	}
	return &Stack[T]{data: make([]T, capacity)}
}

// Push places value on top of the stack.
// Returns ErrCapacityExceeded when the stack is full.
func (s *Stack[T]) Push(value T) error {
	if s.top == len(s.data) {
		return ErrCapacityExceeded
	}
	s.data[s.top] = value
	s.top++
	return nil
}

// Pop removes and returns the top value.
// Returns ErrEmptyContainer when the stack is empty.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.top == 0 {
		return zero, ErrEmptyContainer
	}
	s.top--
	value := s.data[s.top]
	s.data[s.top] = zero
	return value, nil
}

// Peek returns the top value without removing it.
// Returns ErrEmptyContainer when the stack is empty.
func (s *Stack[T]) Peek() (T, error) {
	var zero T
	if s.top == 0 {
		return zero, ErrEmptyContainer
	}
	return s.data[s.top-1], nil
}

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool {
	return s.top == 0
}

// Size returns the number of elements currently stacked.
func (s *Stack[T]) Size() int {
	return s.top
}
