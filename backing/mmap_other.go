//go:build !unix

package backing

// Mmap falls back to heap buffers where anonymous mappings are unavailable.
type Mmap struct{}

// Acquire returns a heap buffer of size bytes.
func (Mmap) Acquire(size int) ([]byte, error) {
	return Heap{}.Acquire(size)
}

// Release drops the buffer.
func (Mmap) Release(b []byte) error {
	return nil
}

var _ Backing = Mmap{}
