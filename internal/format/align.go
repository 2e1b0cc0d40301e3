package format

import "golang.org/x/exp/constraints"

// AlignUp returns n rounded up to the next multiple of align. align must be a
// power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp[T constraints.Integer](n, align T) T {
	return (n + align - 1) &^ (align - 1)
}

// Align8 returns n aligned up to the next 8-byte boundary.
func Align8(n int) int {
	return (n + WordAlignmentMask) & ^WordAlignmentMask
}

// IsAligned reports whether n is a multiple of align (a power of two).
func IsAligned[T constraints.Integer](n, align T) bool {
	return n&(align-1) == 0
}

// CeilDiv returns ceil(n / d) for positive d.
func CeilDiv[T constraints.Integer](n, d T) T {
	return (n + d - 1) / d
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// SlotSize returns the total size of a slot serving nodes of nodeSize bytes:
// the header plus enough room for either the node or a free-list link.
func SlotSize(nodeSize int) int {
	return LinkOffset + Max(PointerSize, nodeSize)
}

// ChunkSize returns the size of a chunk holding nodes slots of slotSize bytes.
func ChunkSize(slotSize, nodes int) int {
	return ChunkHeaderSize + slotSize*nodes
}
