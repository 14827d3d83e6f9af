// Package memory is an in-process storage backend used by tests and the
// "memory" storage driver.
package memory

import (
	"context"
	"sync"

	"github.com/docusphere/docusphere-backend/internal/storage"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	s.data[key] = v
	s.mu.Unlock()
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// Reset drops every record.
func (s *Store) Reset() {
	s.mu.Lock()
	s.data = make(map[string][]byte)
	s.mu.Unlock()
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
