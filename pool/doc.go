// Package pool implements a single size-class object pool: a free list of
// fixed-size slots carved out of chunks obtained from a backing allocator.
//
// # Overview
//
// A Pool serves nodes of one size. Each slot reserves a small header followed
// by room for either the node or a free-list link, whichever is larger:
//
//	slot_size  = link_offset + max(pointer_size, node_size)
//	chunk_size = chunk_header_size + slot_size * nodes_per_chunk
//
// While a slot is free, the first eight bytes of its user region hold a
// reference to the next free slot, so the free list costs no memory beyond
// the slots themselves. While a slot is allocated, the whole user region
// belongs to the caller.
//
// # Growth
//
// Growth is lazy and monotonic. Alloc acquires a new chunk only when the free
// list is empty, prepends it to the chunk list and threads its slots onto the
// free list so that the last slot carved is handed out first. Chunks are never
// returned to the backing until Reset or Close.
//
// # Usage Example
//
//	p := pool.New(24, pool.WithNodesPerChunk(256))
//	defer p.Close()
//
//	node, err := p.Alloc()
//	if err != nil {
//	    return err
//	}
//	binary.LittleEndian.PutUint64(node, 42)
//
//	// Later, return the slot
//	err = p.Free(node)
//
// # Preconditions
//
// Free must be given a slice returned by Alloc on the same pool that has not
// been freed since. The pool rejects slices that are structurally impossible
// (outside its chunks or off a slot boundary) with ErrForeignPointer; with
// WithDebug it also rejects double frees with ErrDoubleFree. Other misuse
// corrupts the free list.
//
// # Thread Safety
//
// Pool instances are not thread-safe. Callers must synchronize access
// externally; sizeclass.Router offers per-class locking.
package pool
