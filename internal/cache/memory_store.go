package cache

import "sync"

// MemoryStore is a map-backed Store with optional concurrency safety.
type MemoryStore struct {
	// If muPtr is nil, the store is NOT goroutine-safe.
	muPtr *sync.RWMutex

	items map[string]Entry
}

// Options controls construction of a MemoryStore.
type Options struct {
	// ConcurrencySafe controls whether operations are guarded by a RWMutex.
	// Leave it off only when a single goroutine owns the store.
	ConcurrencySafe bool
}

// NewMemoryStore constructs a new MemoryStore with the given options.
func NewMemoryStore(opts Options) *MemoryStore {
	var mu *sync.RWMutex
	if opts.ConcurrencySafe {
		mu = &sync.RWMutex{}
	}
	return &MemoryStore{
		muPtr: mu,
		items: make(map[string]Entry),
	}
}

func (s *MemoryStore) lockR() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.RLock()
	return s.muPtr.RUnlock
}

func (s *MemoryStore) lockW() func() {
	if s.muPtr == nil {
		return func() {}
	}
	s.muPtr.Lock()
	return s.muPtr.Unlock
}

// Load implements Store.Load.
func (s *MemoryStore) Load(key string) (Entry, bool) {
	unlock := s.lockR()
	defer unlock()
	e, ok := s.items[key]
	return e, ok
}

// Save implements Store.Save.
func (s *MemoryStore) Save(key string, e Entry) {
	unlock := s.lockW()
	defer unlock()
	s.items[key] = e
}

// Delete implements Store.Delete.
func (s *MemoryStore) Delete(key string) {
	unlock := s.lockW()
	defer unlock()
	delete(s.items, key)
}

// Clear implements Store.Clear.
func (s *MemoryStore) Clear() {
	unlock := s.lockW()
	defer unlock()
	s.items = make(map[string]Entry)
}

// Len returns the number of stored entries, stale ones included.
func (s *MemoryStore) Len() int {
	unlock := s.lockR()
	defer unlock()
	return len(s.items)
}

var _ Store = (*MemoryStore)(nil)
