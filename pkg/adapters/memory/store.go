// Package memory provides the in-memory state store used by the CLI
// and by tests. Single process only; state dies with it.
package memory

import (
	"context"
	"sync"

	"github.com/impact-cms/florence/pkg/domain"
)

// Store implements ports.StateStore in memory. Safe for concurrent use.
type Store struct {
	data map[string]*domain.ThreadState
	mu   sync.RWMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]*domain.ThreadState)}
}

// Save stores a deep copy so later caller mutations never leak in.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.ThreadState) error {
	copied := state.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load returns a copy so the caller cannot mutate stored state by
// pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.ThreadState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Clone(), nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session ids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
