package sizeclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ClassIndex(t *testing.T) {
	cfg := Config{Name: "t", Step: 8, Classes: 64}

	tests := []struct {
		n    int
		want int
	}{
		{1, 0},
		{7, 0},
		{8, 0},
		{9, 1},
		{16, 1},
		{17, 2},
		{20, 2},
		{504, 62},
		{505, 63},
		{512, 63},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.ClassIndex(tt.n), "ClassIndex(%d)", tt.n)
	}
	assert.Equal(t, 512, cfg.MaxSize())
}

// TestConfig_FragmentationBound checks every in-range size fits its class with
// less than one step of waste.
func TestConfig_FragmentationBound(t *testing.T) {
	for _, cfg := range Presets() {
		t.Run(cfg.Name, func(t *testing.T) {
			for n := 1; n <= cfg.MaxSize(); n++ {
				i := cfg.ClassIndex(n)
				require.GreaterOrEqual(t, i, 0)
				require.Less(t, i, cfg.Classes)

				size := cfg.NodeSize(i)
				require.GreaterOrEqual(t, size, n)
				require.Less(t, size-n, cfg.Step, "n=%d wastes too much in class %d", n, i)
			}
		})
	}
}

func TestConfig_NodeSizesStrictlyIncrease(t *testing.T) {
	cfg := ConfigWide
	for i := 1; i < cfg.Classes; i++ {
		require.Greater(t, cfg.NodeSize(i), cfg.NodeSize(i-1))
	}
	require.Equal(t, cfg.MaxSize(), cfg.NodeSize(cfg.Classes-1))
}

func TestConfig_Validate(t *testing.T) {
	for _, cfg := range Presets() {
		require.NoError(t, cfg.Validate(), cfg.Name)
	}

	bad := []Config{
		{Name: "zero step", Step: 0, Classes: 4},
		{Name: "negative step", Step: -8, Classes: 4},
		{Name: "no classes", Step: 8, Classes: 0},
		{Name: "negative nodes", Step: 8, Classes: 4, NodesPerChunk: -1},
		{Name: "huge", Step: 1 << 16, Classes: 1 << 10},
	}
	for _, cfg := range bad {
		t.Run(cfg.Name, func(t *testing.T) {
			require.ErrorIs(t, cfg.Validate(), ErrBadConfig)
		})
	}
}

func TestLookup(t *testing.T) {
	cfg, err := Lookup("compact")
	require.NoError(t, err)
	require.Equal(t, ConfigCompact, cfg)

	cfg, err = Lookup("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig, cfg)

	_, err = Lookup("nope")
	require.ErrorIs(t, err, ErrBadConfig)
}
