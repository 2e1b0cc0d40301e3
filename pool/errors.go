package pool

import (
	"github.com/pkg/errors"

	"github.com/joshuapare/poolalloc/backing"
)

var (
	// ErrOutOfMemory indicates the backing allocator failed while the pool was
	// acquiring a chunk. The pool is left unchanged.
	ErrOutOfMemory = backing.ErrOutOfMemory

	// ErrForeignPointer indicates Free was given memory that does not lie on a
	// slot boundary inside one of this pool's chunks.
	ErrForeignPointer = errors.New("pool: slice was not allocated by this pool")

	// ErrDoubleFree indicates Free was given a slot that is already free.
	// Only detected when the pool runs with WithDebug.
	ErrDoubleFree = errors.New("pool: slot is already free")

	// ErrClosed indicates use of a pool after Close.
	ErrClosed = errors.New("pool: closed")
)
