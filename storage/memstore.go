package storage

import "sync"

// MemStore keeps values in process memory; nothing survives a restart
type MemStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string][]byte),
	}
}

// Get returns a copy of the value stored under key, or ErrNotFound
func (s *MemStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, exists := s.values[key]
	if !exists {
		return nil, ErrNotFound
	}

	result := make([]byte, len(val))
	copy(result, val)
	return result, nil
}

// Set stores a copy of value under key
func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Close is a no-op
func (s *MemStore) Close() error {
	return nil
}
