package icon

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Set memoises descriptors by icon name for the duration of one section
// render.
type Set struct {
	r  *Resolver
	mu sync.Mutex
	m  map[string]Descriptor
}

// NewSet returns an empty Set backed by r.
func (r *Resolver) NewSet() *Set {
	return &Set{r: r, m: make(map[string]Descriptor)}
}

// Load resolves every distinct name not already in the set. Each name is
// fetched exactly once and all fetches run concurrently; Load returns when
// every one has settled.
func (s *Set) Load(ctx context.Context, names ...string) {
	s.mu.Lock()
	pending := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := s.m[n]; ok || seen[n] {
			continue
		}
		seen[n] = true
		pending = append(pending, n)
	}
	s.mu.Unlock()

	var g errgroup.Group
	for _, name := range pending {
		g.Go(func() error {
			d := s.r.Resolve(ctx, name)
			s.mu.Lock()
			s.m[name] = d
			s.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

// Get returns the descriptor for name, or Default() if it was never loaded.
func (s *Set) Get(name string) Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.m[name]; ok {
		return d
	}
	return Default()
}

// Len reports how many names have been resolved.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
