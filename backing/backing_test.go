package backing

import (
	"math"
	"testing"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_AcquireZeroedAndAligned(t *testing.T) {
	for _, size := range []int{1, 7, 8, 13, 4096, 70000} {
		b, err := Heap{}.Acquire(size)
		require.NoError(t, err, "Acquire(%d)", size)
		require.Len(t, b, size)

		addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
		assert.Zero(t, addr%8, "buffer of %d bytes should be 8-byte aligned", size)
		for i, v := range b {
			if v != 0 {
				t.Fatalf("byte %d of %d-byte buffer not zeroed", i, size)
			}
		}
		require.NoError(t, Heap{}.Release(b))
	}
}

func TestHeap_BadSize(t *testing.T) {
	_, err := Heap{}.Acquire(0)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = Heap{}.Acquire(-1)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestHeap_ImpossibleSizeIsOutOfMemory(t *testing.T) {
	_, err := Heap{}.Acquire(math.MaxInt / 2)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOutOfMemory), "got %v", err)
}

func TestMmap_AcquireRelease(t *testing.T) {
	b, err := Mmap{}.Acquire(10000)
	require.NoError(t, err)
	require.Len(t, b, 10000)

	// Mapping must be writable end to end.
	b[0] = 0xAA
	b[len(b)-1] = 0x55
	assert.Equal(t, byte(0xAA), b[0])
	assert.Equal(t, byte(0x55), b[len(b)-1])

	require.NoError(t, Mmap{}.Release(b))
}

func TestRegion_AcquireRelease(t *testing.T) {
	b, err := Region{}.Acquire(5000)
	require.NoError(t, err)
	require.Len(t, b, 5000)
	assert.Zero(t, uintptr(unsafe.Pointer(unsafe.SliceData(b)))%8)
	assert.Equal(t, byte(0), b[4999])

	b[4999] = 0x7F
	require.NoError(t, Region{}.Release(b))

	_, err = Region{}.Acquire(0)
	require.ErrorIs(t, err, ErrBadSize)
}

func TestLimit_BudgetExhaustion(t *testing.T) {
	l := NewLimit(nil, 100)

	a, err := l.Acquire(60)
	require.NoError(t, err)
	require.Equal(t, 60, l.Used())

	_, err = l.Acquire(41)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, 60, l.Used(), "failed acquire must not consume budget")

	b, err := l.Acquire(40)
	require.NoError(t, err)
	require.Equal(t, 100, l.Used())

	require.NoError(t, l.Release(a))
	require.NoError(t, l.Release(b))
	require.Zero(t, l.Used())

	l.SetBudget(10)
	_, err = l.Acquire(11)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestCounting_TracksTraffic(t *testing.T) {
	c := NewCounting(nil)

	a, err := c.Acquire(32)
	require.NoError(t, err)
	b, err := c.Acquire(64)
	require.NoError(t, err)

	st := c.Stats()
	assert.Equal(t, 2, st.Acquired)
	assert.Equal(t, 2, st.Live)
	assert.Equal(t, int64(96), st.BytesAcquired)

	require.NoError(t, c.Release(a))
	require.ErrorIs(t, c.Release(a), ErrUnknownBuffer, "double release must be rejected")
	require.ErrorIs(t, c.Release(make([]byte, 8)), ErrUnknownBuffer)
	require.NoError(t, c.Release(b))

	st = c.Stats()
	assert.Equal(t, 2, st.Released)
	assert.Zero(t, st.Live)
	assert.Equal(t, st.BytesAcquired, st.BytesReleased)
}

func TestCounting_RecordsFailures(t *testing.T) {
	c := NewCounting(NewLimit(nil, 16))
	_, err := c.Acquire(32)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, 1, c.Stats().Failed)
	assert.Zero(t, c.Stats().Acquired)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Backing
	}{
		{"", Heap{}},
		{"heap", Heap{}},
		{"MMAP", Mmap{}},
		{" region ", Region{}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.name)
		require.NoError(t, err, "Parse(%q)", tt.name)
		assert.IsType(t, tt.want, got)
	}

	_, err := Parse("arena")
	require.Error(t, err)
}
