package backing

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfMemory indicates the allocation primitive could not supply the
	// requested buffer.
	ErrOutOfMemory = errors.New("backing: out of memory")

	// ErrBadSize indicates a non-positive acquisition size.
	ErrBadSize = errors.New("backing: size must be positive")

	// ErrUnknownBuffer indicates a release of a buffer that is not currently
	// outstanding (never acquired, or already released).
	ErrUnknownBuffer = errors.New("backing: unknown or already released buffer")
)

// Backing is the general-purpose allocator behind pools and routers.
type Backing interface {
	// Acquire returns a zeroed buffer of exactly size bytes.
	Acquire(size int) ([]byte, error)

	// Release returns a buffer obtained from Acquire. b must be the slice
	// Acquire returned, not a reslice of it.
	Release(b []byte) error
}

// Names lists the backings accepted by Parse.
var Names = []string{"heap", "mmap", "region"}

// Parse returns the backing registered under name. The empty string selects
// the heap.
func Parse(name string) (Backing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "heap":
		return Heap{}, nil
	case "mmap":
		return Mmap{}, nil
	case "region":
		return Region{}, nil
	default:
		return nil, errors.Errorf("backing: unknown backing %q (want one of %s)",
			name, strings.Join(Names, ", "))
	}
}
