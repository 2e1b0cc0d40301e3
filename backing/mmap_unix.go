//go:build unix

package backing

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Mmap allocates buffers as anonymous private memory mappings. The memory
// lives outside the Go heap and is returned to the operating system on
// Release.
type Mmap struct{}

// Acquire maps size bytes of zeroed, page-aligned memory.
func (Mmap) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		if errors.Is(err, unix.ENOMEM) {
			return nil, errors.Wrapf(ErrOutOfMemory, "mmap: %d bytes", size)
		}
		return nil, errors.Wrapf(err, "mmap: %d bytes", size)
	}
	return b, nil
}

// Release unmaps b. b must be the exact slice returned by Acquire.
func (Mmap) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return errors.Wrap(unix.Munmap(b), "munmap")
}

var _ Backing = Mmap{}
