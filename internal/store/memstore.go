package store

import "sync"

// MemStore is an in-memory implementation of Storer for testing.
// ReadErr and WriteErr, when set, are returned by Get/Set so callers'
// degradation paths can be exercised.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string

	ReadErr  error
	WriteErr error
}

// NewMemStore creates a new in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string]string),
	}
}

func (s *MemStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ReadErr != nil {
		return "", false, s.ReadErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.values[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}
	delete(s.values, key)
	return nil
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

// Compile-time interface check
var _ Storer = (*MemStore)(nil)
