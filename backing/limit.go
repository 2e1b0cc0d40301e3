package backing

import (
	"sync"

	"github.com/pkg/errors"
)

// Limit caps the number of bytes outstanding through an inner Backing.
// Requests that would exceed the budget fail with ErrOutOfMemory without
// reaching the inner backing.
type Limit struct {
	inner Backing

	mu     sync.Mutex
	budget int
	used   int
}

// NewLimit wraps inner with a budget of budget bytes. A nil inner selects Heap.
func NewLimit(inner Backing, budget int) *Limit {
	if inner == nil {
		inner = Heap{}
	}
	return &Limit{inner: inner, budget: budget}
}

// Acquire reserves size bytes of budget and forwards to the inner backing.
func (l *Limit) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}

	l.mu.Lock()
	if l.used+size > l.budget {
		used := l.used
		l.mu.Unlock()
		return nil, errors.Wrapf(ErrOutOfMemory, "limit: %d bytes requested, %d of %d in use",
			size, used, l.budget)
	}
	l.used += size
	l.mu.Unlock()

	b, err := l.inner.Acquire(size)
	if err != nil {
		l.mu.Lock()
		l.used -= size
		l.mu.Unlock()
		return nil, err
	}
	return b, nil
}

// Release returns b to the inner backing and credits its length back to the
// budget.
func (l *Limit) Release(b []byte) error {
	if err := l.inner.Release(b); err != nil {
		return err
	}
	l.mu.Lock()
	l.used -= len(b)
	l.mu.Unlock()
	return nil
}

// Used returns the bytes currently outstanding.
func (l *Limit) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// SetBudget changes the budget. Outstanding buffers are not affected.
func (l *Limit) SetBudget(budget int) {
	l.mu.Lock()
	l.budget = budget
	l.mu.Unlock()
}

var _ Backing = (*Limit)(nil)
