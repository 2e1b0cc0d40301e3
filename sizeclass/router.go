package sizeclass

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/internal/logger"
	"github.com/joshuapare/poolalloc/pool"
)

// Router maps byte counts onto size-class pools. Requests of at most
// Config.MaxSize bytes are served by the pool of the smallest class that fits;
// larger requests go to the fallback backing.
//
// A Router is not safe for concurrent use unless built WithLocking.
type Router struct {
	cfg      Config
	coll     *Collection
	fallback backing.Backing

	// locks holds one mutex per class; nil when locking is disabled.
	locks []sync.Mutex

	closed         atomic.Bool
	fallbackAllocs atomic.Int64
	fallbackFrees  atomic.Int64
}

type options struct {
	backing  backing.Backing
	fallback backing.Backing
	locking  bool
	debug    bool
}

// Option configures a Router.
type Option func(*options)

// WithBacking sets the backing every pool acquires its chunks from.
// Default: backing.Heap.
func WithBacking(b backing.Backing) Option {
	return func(o *options) { o.backing = b }
}

// WithFallback sets the allocator for requests larger than MaxSize.
// Default: backing.Heap.
func WithFallback(b backing.Backing) Option {
	return func(o *options) { o.fallback = b }
}

// WithLocking guards each size class with its own mutex so the router can be
// shared between goroutines. Requests for different classes do not contend.
func WithLocking() Option {
	return func(o *options) { o.locking = true }
}

// WithDebug enables double-free detection in every pool.
func WithDebug() Option {
	return func(o *options) { o.debug = true }
}

// New creates a router for cfg. No memory is acquired until the first Alloc.
func New(cfg Config, opts ...Option) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.fallback == nil {
		o.fallback = backing.Heap{}
	}

	poolOpts := []pool.Option{pool.WithNodesPerChunk(cfg.NodesPerChunk)}
	if o.backing != nil {
		poolOpts = append(poolOpts, pool.WithBacking(o.backing))
	}
	if o.debug {
		poolOpts = append(poolOpts, pool.WithDebug())
	}

	r := &Router{
		cfg:      cfg,
		coll:     NewCollection(cfg.Classes, cfg.Step, poolOpts...),
		fallback: o.fallback,
	}
	if o.locking {
		r.locks = make([]sync.Mutex, cfg.Classes)
	}

	if logger.Enabled(logrus.InfoLevel) {
		logger.L.WithFields(logrus.Fields{
			"config":   cfg.Name,
			"step":     cfg.Step,
			"classes":  cfg.Classes,
			"max_size": cfg.MaxSize(),
			"locking":  o.locking,
		}).Info("router created")
	}
	return r, nil
}

// Config returns the router's configuration.
func (r *Router) Config() Config { return r.cfg }

// ClassOf returns the class serving n-byte requests. ok is false when n is
// not positive or is served by the fallback allocator.
func (r *Router) ClassOf(n int) (class int, ok bool) {
	if n <= 0 || n > r.cfg.MaxSize() {
		return 0, false
	}
	return r.cfg.ClassIndex(n), true
}

// Alloc returns at least n bytes. The slice has length n; for pooled sizes its
// backing slot is the class node size. After Close every request fails with
// ErrClosed, pooled or not.
func (r *Router) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "alloc %d bytes", n)
	}
	if r.closed.Load() {
		return nil, errors.Wrapf(ErrClosed, "alloc %d bytes", n)
	}
	if n > r.cfg.MaxSize() {
		b, err := r.fallback.Acquire(n)
		if err != nil {
			return nil, errors.Wrapf(err, "fallback alloc %d bytes", n)
		}
		r.fallbackAllocs.Add(1)
		return b[:n], nil
	}

	class := r.cfg.ClassIndex(n)
	r.lock(class)
	b, err := r.coll.At(class).Alloc()
	r.unlock(class)
	if err != nil {
		return nil, err
	}
	return b[:n], nil
}

// Free returns b to the allocator that served it. n must be the byte count
// passed to the Alloc that returned b; a different n that maps to another
// class corrupts that class.
func (r *Router) Free(b []byte, n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidSize, "free %d bytes", n)
	}
	if n > r.cfg.MaxSize() {
		if err := r.fallback.Release(b); err != nil {
			return errors.Wrapf(err, "fallback free %d bytes", n)
		}
		r.fallbackFrees.Add(1)
		return nil
	}

	class := r.cfg.ClassIndex(n)
	r.lock(class)
	err := r.coll.At(class).Free(b)
	r.unlock(class)
	return err
}

// ClassStats describes one size class.
type ClassStats struct {
	Class    int
	NodeSize int
	pool.Stats
}

// Stats returns a snapshot of every class, smallest first.
func (r *Router) Stats() []ClassStats {
	out := make([]ClassStats, r.coll.Len())
	for i := range out {
		r.lock(i)
		out[i] = ClassStats{
			Class:    i,
			NodeSize: r.cfg.NodeSize(i),
			Stats:    r.coll.At(i).Stats(),
		}
		r.unlock(i)
	}
	return out
}

// FallbackStats returns the number of oversized allocations and frees served
// by the fallback allocator.
func (r *Router) FallbackStats() (allocs, frees int64) {
	return r.fallbackAllocs.Load(), r.fallbackFrees.Load()
}

// Close releases every pooled chunk. Afterwards Alloc fails with ErrClosed
// for every size, and Free of a pooled size fails with ErrClosed. Fallback
// allocations still outstanding are the caller's; Free keeps accepting them
// so they can be returned after Close. Calling Close again is a no-op.
func (r *Router) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	for i := range r.locks {
		r.locks[i].Lock()
	}
	err := r.coll.Close()
	for i := range r.locks {
		r.locks[i].Unlock()
	}

	if logger.Enabled(logrus.InfoLevel) {
		logger.L.WithField("config", r.cfg.Name).Info("router closed")
	}
	return err
}

func (r *Router) lock(class int) {
	if r.locks != nil {
		r.locks[class].Lock()
	}
}

func (r *Router) unlock(class int) {
	if r.locks != nil {
		r.locks[class].Unlock()
	}
}
