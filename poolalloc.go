package poolalloc

import (
	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/pool"
	"github.com/joshuapare/poolalloc/sizeclass"
)

// Errors returned by Alloc and Free. Test with errors.Is.
var (
	ErrOutOfMemory    = backing.ErrOutOfMemory
	ErrInvalidSize    = sizeclass.ErrInvalidSize
	ErrForeignPointer = pool.ErrForeignPointer
	ErrDoubleFree     = pool.ErrDoubleFree
)

// Alloc returns n bytes from the process-wide router.
func Alloc(n int) ([]byte, error) {
	return sizeclass.Default().Alloc(n)
}

// Free returns b, obtained from Alloc(n), to the process-wide router.
func Free(b []byte, n int) error {
	return sizeclass.Default().Free(b, n)
}

// MaxPooledSize returns the largest request the process-wide router serves
// from a pool.
func MaxPooledSize() int {
	return sizeclass.Default().Config().MaxSize()
}
