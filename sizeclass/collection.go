package sizeclass

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/joshuapare/poolalloc/pool"
)

// Collection owns one pool per size class, stored contiguously. Class i
// serves nodes of (i+1)*step bytes.
type Collection struct {
	step  int
	pools []pool.Pool
}

// NewCollection creates classCount pools with node sizes step, 2*step, ...
// opts apply to every pool. No chunk is acquired until a pool is used.
func NewCollection(classCount, step int, opts ...pool.Option) *Collection {
	if classCount < 0 {
		classCount = 0
	}
	c := &Collection{
		step:  step,
		pools: make([]pool.Pool, classCount),
	}
	for i := range c.pools {
		nodeSize := (i + 1) * step
		classOpts := append(opts[:len(opts):len(opts)], pool.WithName(fmt.Sprintf("class%d/%dB", i, nodeSize)))
		c.pools[i].Init(nodeSize, classOpts...)
	}
	return c
}

// At returns the pool for class i. i must be in [0, Len()).
func (c *Collection) At(i int) *pool.Pool {
	return &c.pools[i]
}

// Len returns the number of classes.
func (c *Collection) Len() int { return len(c.pools) }

// Step returns the byte distance between adjacent classes.
func (c *Collection) Step() int { return c.step }

// Close closes every pool in class order. All pools are closed even if one
// fails; the first error is returned.
func (c *Collection) Close() error {
	var firstErr error
	for i := range c.pools {
		if err := c.pools[i].Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "class %d", i)
		}
	}
	return firstErr
}
