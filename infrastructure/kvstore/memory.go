package kvstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jsil-dev/host-sdk/go/domain/errors"
	"github.com/jsil-dev/host-sdk/go/domain/ports"
)

// MemoryStore keeps entries in a map. Values are copied on the way in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ ports.KVStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get implements ports.KVStore.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return cloneBytes(value), nil
}

// Put implements ports.KVStore.
func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.entries[key] = cloneBytes(value)
	s.mu.Unlock()
	return nil
}

// Delete implements ports.KVStore.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Keys implements ports.KVStore.
func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matchingKeys(s.entries, prefix), nil
}

func matchingKeys[V any](entries map[string]V, prefix string) []string {
	keys := make([]string, 0)
	for key := range entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
