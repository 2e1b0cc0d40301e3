package pool

import "github.com/joshuapare/poolalloc/internal/format"

// Stats holds pool counters for testing and instrumentation.
type Stats struct {
	Chunks        int   // Chunks currently held
	SlotsTotal    int   // Slots across all held chunks
	SlotsInUse    int   // Slots handed out and not yet freed
	AllocCalls    int   // Successful Alloc calls
	FreeCalls     int   // Successful Free calls
	GrowCalls     int   // Chunk acquisitions
	ReleaseCalls  int   // Reset/Close passes over the chunk list
	BytesReserved int64 // Bytes held from the backing
}

// FreeSlots returns the number of slots on the free list.
func (s Stats) FreeSlots() int {
	return s.SlotsTotal - s.SlotsInUse
}

// ChunkInfo describes one chunk as recorded in its header.
type ChunkInfo struct {
	Ordinal   int // Acquisition order, starting at 0
	FreeSlots int // Advisory free-slot counter from the chunk header
	Size      int // Bytes held from the backing
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() Stats {
	return p.stats
}

// Chunks walks the chunk list from its head (newest chunk first).
func (p *Pool) Chunks() []ChunkInfo {
	infos := make([]ChunkInfo, 0, len(p.chunks))
	for next := p.chunkHead; next != 0; {
		ordinal := int(next - 1)
		buf := p.chunks[ordinal]
		infos = append(infos, ChunkInfo{
			Ordinal:   ordinal,
			FreeSlots: int(format.ChunkFreeCount(buf)),
			Size:      len(buf),
		})
		next = format.ChunkNext(buf)
	}
	return infos
}
