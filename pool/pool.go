package pool

import (
	"sort"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/internal/format"
	"github.com/joshuapare/poolalloc/internal/logger"
)

// Pool is a free-list allocator for nodes of a single size.
// - chunks are acquired lazily and kept until Reset or Close
// - free slots are threaded through an intrusive LIFO list
// - chunks are additionally linked through their headers, newest first
type Pool struct {
	nodeSize      int
	slotSize      int
	chunkSize     int
	nodesPerChunk int

	backing backing.Backing
	name    string
	debug   bool
	zero    bool
	closed  bool

	// chunks maps an ordinal to its buffer. Ordinals are assigned in
	// acquisition order and are what slot headers record.
	chunks [][]byte

	// spans indexes the chunks by base address, ascending, so Free can find
	// the owning chunk without touching memory outside it.
	spans []chunkSpan

	// chunkHead is ordinal+1 of the newest chunk (0 = no chunks).
	chunkHead uint64

	// freeHead is the first free slot (0 = free list empty).
	freeHead slotRef

	stats Stats
}

// New creates a pool for nodes of nodeSize bytes. No chunk is acquired until
// the first Alloc. Negative sizes are treated as zero.
func New(nodeSize int, opts ...Option) *Pool {
	return new(Pool).Init(nodeSize, opts...)
}

// Init initializes or reinitializes p in place for nodes of nodeSize bytes.
// Chunks held by a previously used p are not released; call Close first.
func (p *Pool) Init(nodeSize int, opts ...Option) *Pool {
	if nodeSize < 0 {
		nodeSize = 0
	}
	*p = Pool{
		nodeSize:      nodeSize,
		nodesPerChunk: format.DefaultNodesPerChunk,
		backing:       backing.Heap{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.slotSize = format.SlotSize(nodeSize)
	p.chunkSize = format.ChunkSize(p.slotSize, p.nodesPerChunk)
	return p
}

// NodeSize returns the usable size of every slot.
func (p *Pool) NodeSize() int { return p.nodeSize }

// SlotSize returns the size of a slot including its header.
func (p *Pool) SlotSize() int { return p.slotSize }

// ChunkSize returns the number of bytes acquired per growth.
func (p *Pool) ChunkSize() int { return p.chunkSize }

// NodesPerChunk returns the number of slots in each chunk.
func (p *Pool) NodesPerChunk() int { return p.nodesPerChunk }

// Alloc returns a slot of NodeSize bytes. If the free list is empty, one chunk
// is acquired from the backing first; if that fails, the error matches
// ErrOutOfMemory and the pool is unchanged.
//
// The returned slice has length NodeSize and spans the slot's whole user
// region as capacity (at least one pointer wide). Its contents are whatever
// the previous owner left unless the pool was built WithZeroing.
func (p *Pool) Alloc() ([]byte, error) {
	if p.closed {
		return nil, ErrClosed
	}

	if p.freeHead.isNil() {
		if err := p.grow(); err != nil {
			return nil, err
		}
	}

	ref := p.freeHead
	buf := p.chunks[ref.ordinal()]
	off := p.slotOffset(ref.index())

	p.freeHead = slotRef(format.ReadLink(buf, off))
	if p.debug {
		buf[off+format.SlotStateOffset] = format.StateAllocated
	}
	p.adjustChunkFree(buf, -1)

	p.stats.AllocCalls++
	p.stats.SlotsInUse++

	user := off + format.LinkOffset
	node := buf[user : user+p.nodeSize : off+p.slotSize]
	if p.zero {
		clear(node)
	}
	return node, nil
}

// Free pushes the slot backing b onto the free list. b must have been
// returned by Alloc on this pool and not freed since.
func (p *Pool) Free(b []byte) error {
	if p.closed {
		return ErrClosed
	}

	ref, err := p.locate(b)
	if err != nil {
		return err
	}

	buf := p.chunks[ref.ordinal()]
	off := p.slotOffset(ref.index())

	if p.debug {
		if buf[off+format.SlotStateOffset] != format.StateAllocated {
			return errors.Wrapf(ErrDoubleFree, "pool %s: chunk %d slot %d",
				p.name, ref.ordinal(), ref.index())
		}
		buf[off+format.SlotStateOffset] = format.StateFree
	}

	format.PutLink(buf, off, uint64(p.freeHead))
	p.freeHead = ref
	p.adjustChunkFree(buf, +1)

	p.stats.FreeCalls++
	p.stats.SlotsInUse--
	return nil
}

// Grow eagerly acquires n chunks and threads their slots onto the free list.
// Chunks acquired before a failure stay linked.
func (p *Pool) Grow(n int) error {
	if p.closed {
		return ErrClosed
	}
	for iter := 0; iter < n; iter++ {
		if err := p.grow(); err != nil {
			return err
		}
	}
	return nil
}

// Reset releases every chunk back to the backing and empties the free list.
// All slots previously handed out become invalid. The pool stays usable.
func (p *Pool) Reset() error {
	if p.closed {
		return ErrClosed
	}
	return p.release()
}

// Close releases every chunk exactly once. The pool cannot be used afterwards.
// Calling Close again is a no-op.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	err := p.release()
	p.closed = true
	return err
}

// grow acquires one chunk, prepends it to the chunk list and pushes its slots
// onto the free list, last slot on top.
func (p *Pool) grow() error {
	buf, err := p.backing.Acquire(p.chunkSize)
	if err != nil {
		return errors.Wrapf(err, "pool %s: acquire %d-byte chunk for %d-byte nodes",
			p.name, p.chunkSize, p.nodeSize)
	}
	if len(buf) < p.chunkSize {
		err := errors.Wrapf(ErrOutOfMemory, "pool %s: backing returned %d bytes, want %d",
			p.name, len(buf), p.chunkSize)
		if rerr := p.backing.Release(buf); rerr != nil {
			err = errors.Wrapf(err, "release: %v", rerr)
		}
		return err
	}

	ordinal := len(p.chunks)

	format.PutChunkHeader(buf, uint32(p.nodesPerChunk), p.chunkHead)

	var state byte
	if p.debug {
		state = format.StateFree
	}
	for i := 0; i < p.nodesPerChunk; i++ {
		off := p.slotOffset(i)
		format.PutSlotHeader(buf, off, i, uint32(ordinal), state)
		format.PutLink(buf, off, uint64(p.freeHead))
		p.freeHead = makeRef(ordinal, i)
	}

	p.chunks = append(p.chunks, buf)
	p.addSpan(buf, ordinal)
	p.chunkHead = uint64(ordinal + 1)

	p.stats.GrowCalls++
	p.stats.Chunks++
	p.stats.SlotsTotal += p.nodesPerChunk
	p.stats.BytesReserved += int64(p.chunkSize)

	if logger.Enabled(logrus.DebugLevel) {
		logger.L.WithFields(logrus.Fields{
			"pool":       p.name,
			"node_size":  p.nodeSize,
			"chunk_size": p.chunkSize,
			"chunks":     len(p.chunks),
		}).Debug("chunk acquired")
	}
	return nil
}

// release walks the chunk list and hands every chunk back to the backing.
// Every chunk is released even if an earlier release fails; the first error
// is returned.
func (p *Pool) release() error {
	var firstErr error
	released := 0

	for next := p.chunkHead; next != 0; {
		ordinal := int(next - 1)
		buf := p.chunks[ordinal]
		next = format.ChunkNext(buf)

		if err := p.backing.Release(buf); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "pool %s: release chunk %d", p.name, ordinal)
		}
		p.chunks[ordinal] = nil
		released++
	}

	if logger.Enabled(logrus.DebugLevel) && released > 0 {
		logger.L.WithFields(logrus.Fields{
			"pool":      p.name,
			"node_size": p.nodeSize,
			"chunks":    released,
		}).Debug("chunks released")
	}

	p.chunks = nil
	p.spans = nil
	p.chunkHead = 0
	p.freeHead = 0
	p.stats.Chunks = 0
	p.stats.SlotsTotal = 0
	p.stats.SlotsInUse = 0
	p.stats.BytesReserved = 0
	p.stats.ReleaseCalls++
	return firstErr
}

// chunkSpan records where a chunk's buffer starts.
type chunkSpan struct {
	base    uintptr
	ordinal int
}

func (p *Pool) addSpan(buf []byte, ordinal int) {
	span := chunkSpan{base: uintptr(unsafe.Pointer(unsafe.SliceData(buf))), ordinal: ordinal}
	i := sort.Search(len(p.spans), func(i int) bool { return p.spans[i].base > span.base })
	p.spans = append(p.spans, chunkSpan{})
	copy(p.spans[i+1:], p.spans[i:])
	p.spans[i] = span
}

// locate maps a slice returned by Alloc back to its slot. The owning chunk is
// found by address first; memory is only read once the address is known to
// be a slot of that chunk, so foreign slices are never dereferenced.
func (p *Pool) locate(b []byte) (slotRef, error) {
	data := unsafe.SliceData(b)
	if data == nil {
		return 0, errors.Wrap(ErrForeignPointer, "nil slice")
	}
	addr := uintptr(unsafe.Pointer(data))

	// Last chunk whose base is at or below addr.
	i := sort.Search(len(p.spans), func(i int) bool { return p.spans[i].base > addr }) - 1
	if i < 0 {
		return 0, errors.Wrapf(ErrForeignPointer, "pool %s: address %#x below every chunk", p.name, addr)
	}
	span := p.spans[i]

	first := span.base + format.ChunkHeaderSize + format.LinkOffset
	slot := uintptr(p.slotSize)
	if addr < first || addr-first >= slot*uintptr(p.nodesPerChunk) {
		return 0, errors.Wrapf(ErrForeignPointer, "pool %s: address %#x outside the slots of chunk %d",
			p.name, addr, span.ordinal)
	}
	rel := addr - first
	if rel%slot != 0 {
		return 0, errors.Wrapf(ErrForeignPointer, "pool %s: address %#x not on a slot of chunk %d",
			p.name, addr, span.ordinal)
	}

	index := int(rel / slot)
	chunk := p.chunks[span.ordinal]
	if got := int(format.SlotOrdinal(chunk, p.slotOffset(index))); got != span.ordinal {
		return 0, errors.Wrapf(ErrForeignPointer, "pool %s: slot header names chunk %d, want %d",
			p.name, got, span.ordinal)
	}
	return makeRef(span.ordinal, index), nil
}

func (p *Pool) slotOffset(index int) int {
	return format.ChunkHeaderSize + index*p.slotSize
}

func (p *Pool) adjustChunkFree(chunk []byte, delta int32) {
	n := int32(format.ChunkFreeCount(chunk)) + delta
	format.PutChunkFreeCount(chunk, uint32(n))
}
