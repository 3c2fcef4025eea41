// Package pool provides object pooling to reduce GC pressure in the
// per-token loops of the tagger.
package pool

import (
	"sync"
)

// Slices pools slices of T. Slices are stored by pointer so Put does not
// allocate.
type Slices[T any] struct {
	p sync.Pool
}

// NewSlices creates a pool whose fresh slices have capacity capHint.
func NewSlices[T any](capHint int) *Slices[T] {
	s := &Slices[T]{}
	s.p.New = func() interface{} {
		v := make([]T, 0, capHint)
		return &v
	}
	return s
}

// Get gets an empty slice from the pool.
func (s *Slices[T]) Get() []T {
	v := s.p.Get().(*[]T)
	return (*v)[:0]
}

// Put returns a slice to the pool. The caller must not use it afterwards.
func (s *Slices[T]) Put(v []T) {
	if v == nil {
		return
	}
	clear(v[:cap(v)])
	v = v[:0]
	s.p.Put(&v)
}
