package pool

// slotRef identifies a slot as (chunk ordinal + 1) in the high 32 bits and the
// slot index within the chunk in the low 32 bits. The zero value is the end of
// a list, which is why ordinals are biased by one.
type slotRef uint64

func makeRef(ordinal, index int) slotRef {
	return slotRef(uint64(ordinal+1)<<32 | uint64(uint32(index)))
}

func (r slotRef) ordinal() int { return int(r>>32) - 1 }

func (r slotRef) index() int { return int(uint32(r)) }

func (r slotRef) isNil() bool { return r == 0 }
