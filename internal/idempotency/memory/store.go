package memory

import (
	"context"
	"sync"

	"github.com/dejobratic/vestuario/internal/catalog/ports"
)

type scopedKey struct {
	resource string
	key      string
}

// Store retains create responses for replaying retried requests.
type Store struct {
	mu    sync.RWMutex
	items map[scopedKey]ports.StoredResponse
}

var _ ports.IdempotencyStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{items: make(map[scopedKey]ports.StoredResponse)}
}

// Get returns nil when nothing was stored for the key.
func (s *Store) Get(_ context.Context, resource, key string) (*ports.StoredResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[scopedKey{resource, key}]
	if !ok {
		return nil, nil
	}
	value.Body = append([]byte(nil), value.Body...)
	return &value, nil
}

// Save keeps the first response stored for a key.
func (s *Store) Save(_ context.Context, key string, response ports.StoredResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := scopedKey{response.Resource, key}
	if _, exists := s.items[k]; exists {
		return nil
	}
	response.Body = append([]byte(nil), response.Body...)
	s.items[k] = response
	return nil
}
