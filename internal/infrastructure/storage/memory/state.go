package memory

import (
	"context"
	"sync"

	"github.com/grocersmart/backend/internal/domain"
)

// Ensure StateStore implements the interface.
var _ domain.StateRepository = (*StateStore)(nil)

// StateStore is an in-memory client state store. State is lost on restart.
type StateStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		values: make(map[string][]byte),
	}
}

// Load returns a copy of the value stored under key.
func (s *StateStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.values[key]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// Save stores a copy of value under key.
func (s *StateStore) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *StateStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
