package main

import (
	"github.com/joshuapare/poolalloc/adapter"
)

// Bag is an ordered container whose elements are allocated one at a time
// from an allocator, the way a node-based list allocates its nodes.
type Bag[T any] struct {
	alloc *adapter.Typed[T]
	items []*T
}

// NewBag creates an empty bag drawing element storage from a.
func NewBag[T any](a adapter.Allocator) (*Bag[T], error) {
	t, err := adapter.New[T](a)
	if err != nil {
		return nil, err
	}
	return &Bag[T]{alloc: t}, nil
}

// Len returns the number of elements.
func (b *Bag[T]) Len() int { return len(b.items) }

// At returns element i.
func (b *Bag[T]) At(i int) *T { return b.items[i] }

// Push appends v.
func (b *Bag[T]) Push(v T) error {
	p, err := b.alloc.New(v)
	if err != nil {
		return err
	}
	b.items = append(b.items, p)
	return nil
}

// Pop removes the last element and returns its value.
func (b *Bag[T]) Pop() (T, error) {
	var zero T
	n := len(b.items)
	if n == 0 {
		return zero, nil
	}
	p := b.items[n-1]
	v := *p
	b.items[n-1] = nil
	b.items = b.items[:n-1]
	return v, b.alloc.Delete(p)
}

// Filter deletes every element for which keep returns false, preserving the
// order of the rest. keep is called once per element, front to back.
func (b *Bag[T]) Filter(keep func(*T) bool) error {
	kept := b.items[:0]
	var firstErr error
	for _, p := range b.items {
		if keep(p) {
			kept = append(kept, p)
			continue
		}
		if err := b.alloc.Delete(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	clear(b.items[len(kept):])
	b.items = kept
	return firstErr
}

// Clear deletes every element.
func (b *Bag[T]) Clear() error {
	return b.Filter(func(*T) bool { return false })
}
