package stack

import (
	"errors"
	"slices"
)

// ErrOverflow is returned by Push when a bounded stack is full.
var ErrOverflow = errors.New("stack: depth limit exceeded")

// Stack is a LIFO container with an optional depth limit.
type Stack[T any] struct {
	items []T
	limit int
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// NewBounded rejects pushes beyond limit items. A limit <= 0 means unbounded.
func NewBounded[T any](limit int) *Stack[T] {
	capacity := min(max(limit, 0), 16)
	return &Stack[T]{
		items: make([]T, 0, capacity),
		limit: limit,
	}
}

// Push adds item on top, failing with ErrOverflow when the limit is reached.
func (s *Stack[T]) Push(item T) error {
	if s.limit > 0 && len(s.items) >= s.limit {
		return ErrOverflow
	}
	s.items = append(s.items, item)
	return nil
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}

	index := len(s.items) - 1
	item := s.items[index]
	var zero T
	s.items[index] = zero
	s.items = s.items[:index]
	return item, true
}

// PeekRef allows modifying the top element in place.
func (s *Stack[T]) PeekRef() *T {
	if len(s.items) == 0 {
		return nil
	}

	return &s.items[len(s.items)-1]
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Size() int {
	return len(s.items)
}

// ToSlice orders from bottom to top of the stack.
func (s *Stack[T]) ToSlice() []T {
	return slices.Clone(s.items)
}
