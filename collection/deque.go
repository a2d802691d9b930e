// CLAUDE:SUMMARY Minimal FIFO collection (len, peek/pop front, push back) handed to callers as query results.
// Package collection provides the ordered result container returned by
// queries. It deliberately exposes a small deque contract instead of a full
// container API, so host bindings can map it onto their own array types.
package collection

import (
	"encoding/json"
	"iter"
)

// Deque is an ordered sequence supporting removal from the front and
// appends at the back. The zero value is an empty deque ready to use.
// A Deque is not safe for concurrent mutation.
type Deque[T any] struct {
	items []T
	head  int
}

// New returns an empty deque with room for capacity items.
func New[T any](capacity int) *Deque[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Deque[T]{items: make([]T, 0, capacity)}
}

// From returns a deque holding items in order. The slice is copied.
func From[T any](items ...T) *Deque[T] {
	d := New[T](len(items))
	d.items = append(d.items, items...)
	return d
}

// Len returns the number of items left.
func (d *Deque[T]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.items) - d.head
}

// PushBack appends v.
func (d *Deque[T]) PushBack(v T) {
	d.items = append(d.items, v)
}

// PeekFront returns the first item without removing it.
func (d *Deque[T]) PeekFront() (T, bool) {
	var zero T
	if d.Len() == 0 {
		return zero, false
	}
	return d.items[d.head], true
}

// PopFront removes and returns the first item.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.Len() == 0 {
		return zero, false
	}
	v := d.items[d.head]
	d.items[d.head] = zero
	d.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	switch {
	case d.head == len(d.items):
		d.items = d.items[:0]
		d.head = 0
	case d.head > 32 && d.head*2 >= len(d.items):
		n := copy(d.items, d.items[d.head:])
		clear(d.items[n:])
		d.items = d.items[:n]
		d.head = 0
	}
	return v, true
}

// All yields the remaining items front to back without consuming them.
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if d == nil {
			return
		}
		for _, v := range d.items[d.head:] {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns a copy of the remaining items.
func (d *Deque[T]) Slice() []T {
	out := make([]T, d.Len())
	if d != nil {
		copy(out, d.items[d.head:])
	}
	return out
}

// MarshalJSON encodes the remaining items as a JSON array.
func (d *Deque[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Slice())
}
