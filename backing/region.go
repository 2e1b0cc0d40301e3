package backing

import (
	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Region allocates anonymous mappings through mmap-go, which also covers
// Windows. Like Mmap, memory is outside the Go heap and returned to the
// operating system on Release.
type Region struct{}

// Acquire maps a zeroed, page-aligned region of size bytes.
func (Region) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrOutOfMemory, "region: %d bytes: %v", size, err)
	}
	return m, nil
}

// Release unmaps b. b must be the slice Acquire returned.
func (Region) Release(b []byte) error {
	m := mmap.MMap(b)
	return errors.Wrap(m.Unmap(), "region: unmap")
}

var _ Backing = Region{}
