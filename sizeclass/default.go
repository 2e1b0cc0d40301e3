package sizeclass

import "sync"

var (
	defaultOnce   sync.Once
	defaultRouter *Router
)

// Default returns the process-wide router, built on first use with
// DefaultConfig and per-class locking. It is never closed; its chunks live
// until the process exits.
func Default() *Router {
	defaultOnce.Do(func() {
		r, err := New(DefaultConfig, WithLocking())
		if err != nil {
			panic(err)
		}
		defaultRouter = r
	})
	return defaultRouter
}
