package repository

import (
	"context"
	"sync"
)

const defaultCapacity = 20

// MemoryStore is an in-memory Store bounded to a fixed number of runs.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	runs     []Run // oldest first
	byID     map[string]int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		capacity: defaultCapacity,
		byID:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	run.ClassFiles = append([]string(nil), run.ClassFiles...)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byID[run.ID]; ok {
		s.runs[i] = run
		return nil
	}
	s.runs = append(s.runs, run)
	if len(s.runs) > s.capacity {
		s.runs = append([]Run(nil), s.runs[len(s.runs)-s.capacity:]...)
	}
	s.reindex()
	return nil
}

func (s *MemoryStore) reindex() {
	clear(s.byID)
	for i, r := range s.runs {
		s.byID[r.ID] = i
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	return s.runs[i], nil
}

// Recent implements Store.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]Run, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n = min(n, len(s.runs))
	out := make([]Run, 0, n)
	for i := len(s.runs) - 1; i >= len(s.runs)-n; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = nil
	clear(s.byID)
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
