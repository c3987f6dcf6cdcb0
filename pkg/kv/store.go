// Package kv provides a small generic keyed cache.
package kv

import "sync"

// Store is a thread-safe key-value store with an optional size cap. When the
// cap is reached the whole store is cleared before the next insert, which is
// enough for render caches whose keys churn with terminal width.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	data  map[K]V
	limit int
}

// New creates a store. A limit of zero or less means unbounded.
func New[K comparable, V any](limit int) *Store[K, V] {
	return &Store[K, V]{
		data:  make(map[K]V),
		limit: limit,
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *Store[K, V]) set(key K, value V) {
	if _, exists := s.data[key]; !exists && s.limit > 0 && len(s.data) >= s.limit {
		s.data = make(map[K]V)
	}
	s.data[key] = value
}

// GetOrCompute returns the cached value for key, computing and storing it on a miss.
func (s *Store[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := s.Get(key); ok {
		return v
	}

	v := compute()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, v)
	return v
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
}
