// Package memory provides an in-process domain.KVStore for tests and
// ephemeral runs. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// KVStore is a map-backed domain.KVStore.
type KVStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewKVStore creates an empty store.
func NewKVStore() *KVStore {
	return &KVStore{entries: make(map[string][]byte)}
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *KVStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = append([]byte(nil), data...)
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
