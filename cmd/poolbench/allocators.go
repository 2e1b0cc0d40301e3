package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/poolalloc/adapter"
	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/sizeclass"
)

// allocatorNames lists the allocators run can compare.
var allocatorNames = []string{"pool", "pool-locked", "go"}

// goHeap allocates every request with make and leaves frees to the collector.
type goHeap struct{}

func (goHeap) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, sizeclass.ErrInvalidSize
	}
	return make([]byte, n), nil
}

func (goHeap) Free(b []byte, n int) error { return nil }

// benchAllocator is an allocator under test plus its teardown.
type benchAllocator struct {
	name   string
	alloc  adapter.Allocator
	router *sizeclass.Router // nil for the Go heap
}

func (a *benchAllocator) Close() error {
	if a.router == nil {
		return nil
	}
	return a.router.Close()
}

// newBenchAllocator builds the named allocator. Pool allocators use cfg and
// draw their chunks from b.
func newBenchAllocator(name string, cfg sizeclass.Config, b backing.Backing) (*benchAllocator, error) {
	var opts []sizeclass.Option
	switch strings.ToLower(name) {
	case "go":
		return &benchAllocator{name: "go", alloc: goHeap{}}, nil
	case "pool":
	case "pool-locked":
		opts = append(opts, sizeclass.WithLocking())
	default:
		return nil, fmt.Errorf("unknown allocator %q (want one of %s)", name, strings.Join(allocatorNames, ", "))
	}

	r, err := sizeclass.New(cfg, append(opts, sizeclass.WithBacking(b))...)
	if err != nil {
		return nil, err
	}
	return &benchAllocator{name: name, alloc: r, router: r}, nil
}
