package sizeclass

import (
	"github.com/pkg/errors"

	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/pool"
)

var (
	// ErrInvalidSize indicates a zero or negative byte count.
	ErrInvalidSize = errors.New("sizeclass: size must be positive")

	// ErrBadConfig indicates a Config that cannot build a router.
	ErrBadConfig = errors.New("sizeclass: invalid configuration")

	// ErrOutOfMemory indicates a pool could not grow or the fallback
	// allocator could not serve an oversized request.
	ErrOutOfMemory = backing.ErrOutOfMemory

	// ErrClosed indicates use of a router after Close.
	ErrClosed = pool.ErrClosed
)
