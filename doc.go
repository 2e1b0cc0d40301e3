// Package poolalloc is a fixed-size-class memory allocator.
//
// Small requests are rounded up to the nearest multiple of a fixed step and
// served from a free-list pool dedicated to that size; requests above the
// largest class go straight to a general-purpose backing allocator. Pools
// grow one chunk at a time and keep their chunks until they are closed, so
// workloads that repeatedly allocate and free many similarly sized objects
// pay no per-object heap cost after warm-up.
//
// # Packages
//
//   - pool: a single size-class pool (chunk list, intrusive free list)
//   - sizeclass: the class configuration, the pool collection and the Router
//   - backing: the allocators chunks come from (heap, mmap, budgets, counting)
//   - adapter: typed element arrays on top of a Router
//
// # Quick Start
//
// The functions in this package use the process-wide router returned by
// sizeclass.Default, which is safe for concurrent use:
//
//	b, err := poolalloc.Alloc(40)
//	if err != nil {
//	    return err
//	}
//	defer poolalloc.Free(b, 40)
//
// Programs that want their own configuration or backing build a router
// explicitly:
//
//	r, err := sizeclass.New(sizeclass.ConfigWide, sizeclass.WithBacking(backing.Mmap{}))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
// # Logging
//
// Set POOLALLOC_LOG to a level name ("debug", "info") to log router
// construction and chunk growth to stderr.
package poolalloc
