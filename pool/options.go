package pool

import (
	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/internal/format"
)

// Option configures a Pool.
type Option func(*Pool)

// WithNodesPerChunk sets how many slots each chunk holds. Values below one
// select format.DefaultNodesPerChunk; values above format.MaxNodesPerChunk
// are clamped.
func WithNodesPerChunk(n int) Option {
	return func(p *Pool) {
		switch {
		case n < 1:
			n = format.DefaultNodesPerChunk
		case n > format.MaxNodesPerChunk:
			n = format.MaxNodesPerChunk
		}
		p.nodesPerChunk = n
	}
}

// WithBacking sets the allocator chunks are acquired from. Default: backing.Heap.
func WithBacking(b backing.Backing) Option {
	return func(p *Pool) {
		if b != nil {
			p.backing = b
		}
	}
}

// WithDebug enables per-slot state tags. Free then rejects slots that are
// already free with ErrDoubleFree.
func WithDebug() Option {
	return func(p *Pool) { p.debug = true }
}

// WithZeroing clears the user region of every slot handed out by Alloc.
func WithZeroing() Option {
	return func(p *Pool) { p.zero = true }
}

// WithName labels the pool in log output.
func WithName(name string) Option {
	return func(p *Pool) { p.name = name }
}
