package csync

import (
	"iter"
	"sync"
)

// LazySlice is a thread-safe slice populated once by a function running in
// its own goroutine. Readers block until the load finished.
type LazySlice[K any] struct {
	inner []K
	err   error
	done  chan struct{}
	once  sync.Once
}

// NewLazySlice creates a new slice and runs load in a goroutine to populate
// it.
func NewLazySlice[K any](load func() ([]K, error)) *LazySlice[K] {
	s := &LazySlice[K]{done: make(chan struct{})}
	go func() {
		defer s.once.Do(func() { close(s.done) })
		s.inner, s.err = load()
	}()
	return s
}

// Done is closed once the slice is loaded.
func (s *LazySlice[K]) Done() <-chan struct{} {
	return s.done
}

// Err returns the error of the load.
func (s *LazySlice[K]) Err() error {
	<-s.done
	return s.err
}

// Len returns the number of loaded elements.
func (s *LazySlice[K]) Len() int {
	<-s.done
	return len(s.inner)
}

// Window returns a copy of the elements in [start, start+size), clipped to
// the loaded elements.
func (s *LazySlice[K]) Window(start, size int) []K {
	<-s.done
	if start < 0 || size <= 0 || start >= len(s.inner) {
		return nil
	}
	end := min(len(s.inner), start+size)
	out := make([]K, end-start)
	copy(out, s.inner[start:end])
	return out
}

// Seq returns an iterator that yields elements from the slice.
func (s *LazySlice[K]) Seq() iter.Seq[K] {
	<-s.done
	return func(yield func(K) bool) {
		for _, v := range s.inner {
			if !yield(v) {
				return
			}
		}
	}
}
