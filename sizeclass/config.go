package sizeclass

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/joshuapare/poolalloc/internal/format"
)

// Config defines a linear size-class layout: Classes pools whose node sizes
// are Step, 2*Step, ..., Classes*Step.
type Config struct {
	// Name for this configuration (for benchmarking and logs)
	Name string

	Step          int // Byte distance between adjacent classes
	Classes       int // Number of pooled classes
	NodesPerChunk int // Slots per chunk in every class; 0 selects the default
}

// Predefined configurations.
var (
	// Default: 8-byte step up to 512 bytes, 128 nodes per chunk.
	ConfigDefault = Config{
		Name:          "Default",
		Step:          8,
		Classes:       64,
		NodesPerChunk: format.DefaultNodesPerChunk,
	}

	// Compact: small objects only (8-128 bytes), smaller chunks.
	// Keeps the reserved footprint low for sparse workloads.
	ConfigCompact = Config{
		Name:          "Compact",
		Step:          8,
		Classes:       16,
		NodesPerChunk: 64,
	}

	// Wide: 16-byte step up to 1 KiB.
	// Half as many classes per byte range, up to 15 bytes wasted per node.
	ConfigWide = Config{
		Name:          "Wide",
		Step:          16,
		Classes:       64,
		NodesPerChunk: format.DefaultNodesPerChunk,
	}

	// DefaultConfig is used by Default and when no configuration is given.
	DefaultConfig = ConfigDefault
)

// Presets returns the predefined configurations in a stable order.
func Presets() []Config {
	return []Config{ConfigDefault, ConfigCompact, ConfigWide}
}

// Lookup returns the preset with the given name (case-insensitive).
func Lookup(name string) (Config, error) {
	if name == "" {
		return DefaultConfig, nil
	}
	for _, c := range Presets() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return Config{}, errors.Wrapf(ErrBadConfig, "unknown preset %q", name)
}

// MaxSize returns the largest request served by a pool. Larger requests go
// to the fallback allocator.
func (c Config) MaxSize() int {
	return c.Step * c.Classes
}

// ClassIndex returns the index of the smallest class whose node size is at
// least n, that is ceil(n/Step)-1. The result is only meaningful for
// 1 <= n <= MaxSize.
func (c Config) ClassIndex(n int) int {
	return format.CeilDiv(n, c.Step) - 1
}

// NodeSize returns the node size of class i.
func (c Config) NodeSize(i int) int {
	return (i + 1) * c.Step
}

// Validate reports whether the configuration can build a router.
func (c Config) Validate() error {
	switch {
	case c.Step < 1:
		return errors.Wrapf(ErrBadConfig, "%s: step %d must be positive", c.Name, c.Step)
	case c.Classes < 1:
		return errors.Wrapf(ErrBadConfig, "%s: class count %d must be positive", c.Name, c.Classes)
	case c.NodesPerChunk < 0:
		return errors.Wrapf(ErrBadConfig, "%s: nodes per chunk %d must not be negative", c.Name, c.NodesPerChunk)
	case c.NodesPerChunk > format.MaxNodesPerChunk:
		return errors.Wrapf(ErrBadConfig, "%s: nodes per chunk %d exceeds %d",
			c.Name, c.NodesPerChunk, format.MaxNodesPerChunk)
	case c.Step > maxClassBytes/c.Classes:
		return errors.Wrapf(ErrBadConfig, "%s: %d classes of step %d exceed %d bytes",
			c.Name, c.Classes, c.Step, maxClassBytes)
	}
	return nil
}

// String returns the configuration name.
func (c Config) String() string {
	return c.Name
}

// maxClassBytes bounds the largest pooled node so that chunk sizes stay well
// inside int on every platform.
const maxClassBytes = 1 << 20
