// Package format holds the byte-level layout of pool chunks and slots: header
// sizes, field offsets, alignment helpers and the little-endian codecs used to
// read and write headers and free-list links. Higher-level packages compute
// offsets through this package instead of hard-coding them.
package format

const (
	// PointerSize is the width of a free-list link. A slot always has room for
	// one link, even when the node it serves is smaller.
	PointerSize = 8

	// WordAlignment is the alignment guaranteed for chunk buffers and, when the
	// slot size is a multiple of it, for every slot's user region.
	WordAlignment = 8

	// WordAlignmentMask is WordAlignment - 1.
	WordAlignmentMask = WordAlignment - 1

	// DefaultNodesPerChunk is the number of slots carved from each chunk when
	// no explicit value is configured.
	DefaultNodesPerChunk = 128

	// MaxNodesPerChunk bounds the slot index so it fits the low half of a
	// packed slot reference.
	MaxNodesPerChunk = 1<<31 - 1
)

// Chunk header layout.
//
//	0x00  uint32  free-slot counter (advisory)
//	0x04  uint32  reserved
//	0x08  uint64  next chunk (ordinal+1, 0 = end of list)
//	0x10  first slot
const (
	ChunkFreeCountOffset = 0x00
	ChunkReservedOffset  = 0x04
	ChunkNextOffset      = 0x08
	ChunkHeaderSize      = 0x10
)

// Slot header layout. The header precedes the user region and is never handed
// to callers.
//
//	0x00  uint8   bias (slot index within the chunk, mod 256)
//	0x01  uint8   state tag (debug builds of a pool only)
//	0x02  uint16  reserved
//	0x04  uint32  owning chunk ordinal
//	0x08  user region; while free, its first 8 bytes hold the next-free link
const (
	SlotBiasOffset     = 0x00
	SlotStateOffset    = 0x01
	SlotReservedOffset = 0x02
	SlotOrdinalOffset  = 0x04
	LinkOffset         = 0x08
)

// Slot state tags written when a pool runs with canaries enabled.
const (
	StateAllocated byte = 0xA1
	StateFree      byte = 0xF7
)
