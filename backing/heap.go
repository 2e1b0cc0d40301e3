package backing

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/joshuapare/poolalloc/internal/format"
)

// Heap allocates buffers on the Go heap. Buffers are backed by []uint64 so
// the first byte is always 8-byte aligned, and they contain no pointers, so
// the collector never scans them.
type Heap struct{}

// Acquire returns a zeroed, 8-byte aligned buffer of size bytes.
func (Heap) Acquire(size int) (b []byte, err error) {
	if size <= 0 {
		return nil, ErrBadSize
	}

	// make panics with a runtime error for lengths the runtime cannot satisfy.
	defer func() {
		if r := recover(); r != nil {
			b = nil
			err = errors.Wrapf(ErrOutOfMemory, "heap: %d bytes: %v", size, r)
		}
	}()

	words := make([]uint64, format.CeilDiv(size, format.WordAlignment))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size), nil
}

// Release drops the buffer; the garbage collector reclaims it once the
// caller holds no more references.
func (Heap) Release(b []byte) error {
	return nil
}

var _ Backing = Heap{}
