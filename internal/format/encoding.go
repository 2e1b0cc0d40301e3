package format

import "encoding/binary"

// Field codecs for chunk and slot headers. Every multi-byte field is
// little-endian. Slot sizes need not be multiples of 8, so headers and links
// are always accessed through these helpers, never through typed pointers.

// PutU16 writes a uint16 value to the buffer at the specified offset.
func PutU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:off+2], v)
}

// PutU32 writes a uint32 value to the buffer at the specified offset.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU16 reads a uint16 value from the buffer at the specified offset.
func ReadU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 value from the buffer at the specified offset.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a uint64 value from the buffer at the specified offset.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// Chunk header fields. chunk is the whole chunk buffer.

// ChunkFreeCount returns the advisory free-slot counter.
func ChunkFreeCount(chunk []byte) uint32 {
	return ReadU32(chunk, ChunkFreeCountOffset)
}

// PutChunkFreeCount stores the advisory free-slot counter.
func PutChunkFreeCount(chunk []byte, n uint32) {
	PutU32(chunk, ChunkFreeCountOffset, n)
}

// ChunkNext returns the forward link of the chunk list (ordinal+1, 0 = end).
func ChunkNext(chunk []byte) uint64 {
	return ReadU64(chunk, ChunkNextOffset)
}

// PutChunkHeader initializes a chunk header: free counter, zeroed reserved
// word and forward link.
func PutChunkHeader(chunk []byte, free uint32, next uint64) {
	PutU32(chunk, ChunkFreeCountOffset, free)
	PutU32(chunk, ChunkReservedOffset, 0)
	PutU64(chunk, ChunkNextOffset, next)
}

// Slot fields. slot is the offset of the slot header within its chunk.

// PutSlotHeader initializes the header of slot index i of chunk ordinal.
func PutSlotHeader(chunk []byte, slot, index int, ordinal uint32, state byte) {
	chunk[slot+SlotBiasOffset] = byte(index)
	chunk[slot+SlotStateOffset] = state
	PutU16(chunk, slot+SlotReservedOffset, 0)
	PutU32(chunk, slot+SlotOrdinalOffset, ordinal)
}

// SlotOrdinal returns the owning chunk ordinal recorded in a slot header.
func SlotOrdinal(chunk []byte, slot int) uint32 {
	return ReadU32(chunk, slot+SlotOrdinalOffset)
}

// ReadLink returns the next-free reference stored in a free slot.
func ReadLink(chunk []byte, slot int) uint64 {
	return ReadU64(chunk, slot+LinkOffset)
}

// PutLink stores the next-free reference in the first word of a slot's user
// region.
func PutLink(chunk []byte, slot int, ref uint64) {
	PutU64(chunk, slot+LinkOffset, ref)
}
