// Package adapter exposes a byte-oriented allocator to code that works with
// typed elements.
//
// Typed[T] turns element counts into byte counts, forwards them to an
// Allocator (typically a *sizeclass.Router) and reinterprets the returned
// bytes as []T. Only pointer-free element types are accepted: pooled memory
// lives outside the garbage collector's view of typed objects, so a Go
// pointer stored there would not keep its target alive.
package adapter

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/joshuapare/poolalloc/internal/format"
	"github.com/joshuapare/poolalloc/sizeclass"
)

var (
	// ErrUnsupportedType indicates an element type that cannot live in pooled
	// memory.
	ErrUnsupportedType = errors.New("adapter: unsupported element type")

	// ErrMisaligned indicates the allocator returned memory that is not
	// aligned for the element type.
	ErrMisaligned = errors.New("adapter: misaligned allocation")

	// ErrInvalidSize indicates a non-positive or overflowing element count.
	ErrInvalidSize = sizeclass.ErrInvalidSize
)

// Allocator is a byte allocator whose Free needs the original byte count.
// *sizeclass.Router satisfies it.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte, n int) error
}

// Typed allocates arrays of T from an Allocator.
type Typed[T any] struct {
	a     Allocator
	size  int
	align int
}

// New returns a Typed adapter over a. It fails with ErrUnsupportedType if T
// contains Go pointers or needs more than 8-byte alignment.
func New[T any](a Allocator) (*Typed[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(t) {
		return nil, errors.Wrapf(ErrUnsupportedType, "%s contains pointers", t)
	}
	if t.Align() > format.WordAlignment {
		return nil, errors.Wrapf(ErrUnsupportedType, "%s needs %d-byte alignment", t, t.Align())
	}
	return &Typed[T]{a: a, size: int(t.Size()), align: t.Align()}, nil
}

// MaxSize returns the largest element count whose byte size fits in an int.
func (t *Typed[T]) MaxSize() int {
	if t.size == 0 {
		return math.MaxInt
	}
	return math.MaxInt / t.size
}

// Allocate returns uninitialized storage for n elements.
func (t *Typed[T]) Allocate(n int) ([]T, error) {
	bytes, err := t.byteCount(n)
	if err != nil {
		return nil, err
	}
	b, err := t.a.Alloc(bytes)
	if err != nil {
		return nil, err
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%uintptr(t.align) != 0 {
		_ = t.a.Free(b, bytes)
		return nil, errors.Wrapf(ErrMisaligned, "%#x for %d-byte alignment", uintptr(p), t.align)
	}
	return unsafe.Slice((*T)(p), n), nil
}

// Deallocate returns storage obtained from Allocate. n must be the count
// passed to Allocate.
func (t *Typed[T]) Deallocate(s []T, n int) error {
	bytes, err := t.byteCount(n)
	if err != nil {
		return err
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), bytes)
	return t.a.Free(b, bytes)
}

// Construct stores v at p.
func (t *Typed[T]) Construct(p *T, v T) {
	*p = v
}

// Destroy resets *p to the zero value.
func (t *Typed[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

// New allocates a single element and stores v in it.
func (t *Typed[T]) New(v T) (*T, error) {
	s, err := t.Allocate(1)
	if err != nil {
		return nil, err
	}
	t.Construct(&s[0], v)
	return &s[0], nil
}

// Delete destroys and deallocates an element returned by New.
func (t *Typed[T]) Delete(p *T) error {
	t.Destroy(p)
	return t.Deallocate(unsafe.Slice(p, 1), 1)
}

// byteCount converts an element count into the byte count sent to the
// allocator. Zero-sized elements still take one byte so that every
// allocation has a distinct address.
func (t *Typed[T]) byteCount(n int) (int, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "%d elements", n)
	}
	if n > t.MaxSize() {
		return 0, errors.Wrapf(ErrInvalidSize, "%d elements of %d bytes overflow", n, t.size)
	}
	return max(n*t.size, 1), nil
}

// hasPointers reports whether values of t hold anything the garbage
// collector traces.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
