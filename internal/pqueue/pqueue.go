// Package pqueue implements keyed min/max priority queues used as the work
// lists of the fixed-point CTL evaluator.
//
// Both variants are indexed binary heaps (container/heap plus an item→slot
// map) rather than a dictionary-based helper, so PushOrDecrease /
// PushOrIncrease run in O(log n): decreasing (resp. increasing) a key that
// is already present sifts the existing heap slot instead of re-inserting.
package pqueue

import (
	"container/heap"
	"fmt"
	"math"
)

// ErrInvalidKey is returned when a key is not a finite real number.
type ErrInvalidKey struct {
	Key float64
}

func (e *ErrInvalidKey) Error() string {
	return fmt.Sprintf("pqueue: invalid key %v: must be a finite real number", e.Key)
}

func validKey(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return &ErrInvalidKey{Key: k}
	}
	return nil
}

type entry[T comparable] struct {
	item T
	key  float64
	slot int // index into the heap slice; -1 once popped
}

// heapSlice implements heap.Interface over *entry[T], ordered by key.
// less determines min-heap vs max-heap behavior.
type heapSlice[T comparable] struct {
	items []*entry[T]
	less  func(a, b float64) bool
}

func (h heapSlice[T]) Len() int { return len(h.items) }
func (h heapSlice[T]) Less(i, j int) bool {
	return h.less(h.items[i].key, h.items[j].key)
}
func (h heapSlice[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].slot = i
	h.items[j].slot = j
}
func (h *heapSlice[T]) Push(x any) {
	e := x.(*entry[T])
	e.slot = len(h.items)
	h.items = append(h.items, e)
}
func (h *heapSlice[T]) Pop() any {
	old := h.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	e.slot = -1
	return e
}

// MinQueue is a keyed min-priority queue over T items (T must be usable as a
// map key — e.g. a state's integer-tuple representation).
type MinQueue[T comparable] struct {
	h     heapSlice[T]
	index map[T]*entry[T]
}

// NewMinQueue constructs an empty min-priority queue.
func NewMinQueue[T comparable]() *MinQueue[T] {
	return &MinQueue[T]{
		h:     heapSlice[T]{less: func(a, b float64) bool { return a < b }},
		index: make(map[T]*entry[T]),
	}
}

// PushOrDecrease inserts item with key if absent; if present and key is
// strictly smaller than the current key, updates it; otherwise no-op.
func (q *MinQueue[T]) PushOrDecrease(item T, key float64) error {
	if err := validKey(key); err != nil {
		return err
	}
	if e, ok := q.index[item]; ok {
		if key < e.key {
			e.key = key
			heap.Fix(&q.h, e.slot)
		}
		return nil
	}
	e := &entry[T]{item: item, key: key}
	q.index[item] = e
	heap.Push(&q.h, e)
	return nil
}

// PopMin removes and returns the item with the smallest key.
// The third return is false if the queue is empty.
func (q *MinQueue[T]) PopMin() (T, float64, bool) {
	if q.h.Len() == 0 {
		var zero T
		return zero, 0, false
	}
	e := heap.Pop(&q.h).(*entry[T])
	delete(q.index, e.item)
	return e.item, e.key, true
}

// IsEmpty reports whether the queue has no entries.
func (q *MinQueue[T]) IsEmpty() bool { return q.h.Len() == 0 }

// Len returns the number of entries currently queued.
func (q *MinQueue[T]) Len() int { return q.h.Len() }

// CurrentKey returns the item's current key, if present.
func (q *MinQueue[T]) CurrentKey(item T) (float64, bool) {
	e, ok := q.index[item]
	if !ok {
		return 0, false
	}
	return e.key, true
}

// MaxQueue is a keyed max-priority queue over T items.
type MaxQueue[T comparable] struct {
	h     heapSlice[T]
	index map[T]*entry[T]
}

// NewMaxQueue constructs an empty max-priority queue.
func NewMaxQueue[T comparable]() *MaxQueue[T] {
	return &MaxQueue[T]{
		h:     heapSlice[T]{less: func(a, b float64) bool { return a > b }},
		index: make(map[T]*entry[T]),
	}
}

// PushOrIncrease inserts item with key if absent; if present and key is
// strictly larger than the current key, updates it; otherwise no-op.
func (q *MaxQueue[T]) PushOrIncrease(item T, key float64) error {
	if err := validKey(key); err != nil {
		return err
	}
	if e, ok := q.index[item]; ok {
		if key > e.key {
			e.key = key
			heap.Fix(&q.h, e.slot)
		}
		return nil
	}
	e := &entry[T]{item: item, key: key}
	q.index[item] = e
	heap.Push(&q.h, e)
	return nil
}

// PopMax removes and returns the item with the largest key.
func (q *MaxQueue[T]) PopMax() (T, float64, bool) {
	if q.h.Len() == 0 {
		var zero T
		return zero, 0, false
	}
	e := heap.Pop(&q.h).(*entry[T])
	delete(q.index, e.item)
	return e.item, e.key, true
}

// IsEmpty reports whether the queue has no entries.
func (q *MaxQueue[T]) IsEmpty() bool { return q.h.Len() == 0 }

// Len returns the number of entries currently queued.
func (q *MaxQueue[T]) Len() int { return q.h.Len() }

// CurrentKey returns the item's current key, if present.
func (q *MaxQueue[T]) CurrentKey(item T) (float64, bool) {
	e, ok := q.index[item]
	if !ok {
		return 0, false
	}
	return e.key, true
}
