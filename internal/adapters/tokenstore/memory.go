package tokenstore

import (
	"context"
	"sync"

	"go.trai.ch/reel/internal/core/ports"
)

var _ ports.TokenStore = (*MemoryStore)(nil)

// MemoryStore keeps the token in process memory only.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates a store seeded with token.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Token returns the current token.
func (s *MemoryStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// SetToken replaces the token.
func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear forgets the token.
func (s *MemoryStore) Clear() error {
	return s.SetToken("")
}

// Watch is a no-op: nothing outside the process can change the token.
func (s *MemoryStore) Watch(context.Context, func(string)) error {
	return nil
}
