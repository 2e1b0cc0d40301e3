package backing

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// CountingStats is a snapshot of the traffic through a Counting backing.
type CountingStats struct {
	Acquired      int   // Successful Acquire calls
	Released      int   // Successful Release calls
	Failed        int   // Acquire calls that returned an error
	BytesAcquired int64 // Total bytes handed out
	BytesReleased int64 // Total bytes returned
	Live          int   // Buffers acquired and not yet released
}

// Counting records every acquisition and release of an inner Backing. Each
// outstanding buffer is tracked by its base address, so releasing a buffer
// twice, or releasing one that never came from this backing, fails with
// ErrUnknownBuffer instead of reaching the inner backing.
type Counting struct {
	inner Backing

	mu    sync.Mutex
	live  map[uintptr]int
	stats CountingStats
}

// NewCounting wraps inner. A nil inner selects Heap.
func NewCounting(inner Backing) *Counting {
	if inner == nil {
		inner = Heap{}
	}
	return &Counting{
		inner: inner,
		live:  make(map[uintptr]int),
	}
}

// Acquire forwards to the inner backing and records the buffer.
func (c *Counting) Acquire(size int) ([]byte, error) {
	b, err := c.inner.Acquire(size)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.stats.Failed++
		return nil, err
	}
	c.live[baseOf(b)] = len(b)
	c.stats.Acquired++
	c.stats.BytesAcquired += int64(len(b))
	c.stats.Live = len(c.live)
	return b, nil
}

// Release forwards b to the inner backing if it is outstanding.
func (c *Counting) Release(b []byte) error {
	if len(b) == 0 {
		return errors.Wrap(ErrUnknownBuffer, "counting: empty buffer")
	}

	c.mu.Lock()
	base := baseOf(b)
	size, ok := c.live[base]
	if !ok {
		c.mu.Unlock()
		return errors.Wrapf(ErrUnknownBuffer, "counting: buffer at %#x", base)
	}
	delete(c.live, base)
	c.stats.Released++
	c.stats.BytesReleased += int64(size)
	c.stats.Live = len(c.live)
	c.mu.Unlock()

	return c.inner.Release(b)
}

// Stats returns a snapshot of the counters.
func (c *Counting) Stats() CountingStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func baseOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

var _ Backing = (*Counting)(nil)
