// Package backing provides the allocators that pools draw their chunks from
// and that routers fall back to for oversized requests.
//
// # Backing Interface
//
// A Backing hands out whole buffers and takes them back:
//
//   - Acquire(size): return a zeroed buffer of exactly size bytes
//   - Release(b): return a buffer previously obtained from Acquire
//
// Release must be called with the exact slice returned by Acquire. Pools
// call Acquire when they grow and Release only when they are reset or closed;
// a buffer is never partially released.
//
// # Implementations
//
//   - Heap: Go heap buffers, 8-byte aligned. Release leaves reclamation to the
//     garbage collector.
//   - Mmap: anonymous private mappings (golang.org/x/sys/unix). Memory is
//     outside the Go heap and is unmapped on Release. Falls back to Heap on
//     platforms without mmap.
//   - Region: anonymous mappings through github.com/edsrzf/mmap-go, for
//     platforms where Mmap falls back to the heap.
//   - Limit: caps the bytes outstanding through an inner Backing and reports
//     ErrOutOfMemory once the budget is exhausted.
//   - Counting: records every acquisition and release of an inner Backing and
//     rejects releases of unknown or already released buffers.
//
// # Errors
//
// Allocation-primitive failures surface as errors matching ErrOutOfMemory
// (test with errors.Is). No implementation retries.
//
// # Thread Safety
//
// All implementations in this package are safe for concurrent use.
package backing
