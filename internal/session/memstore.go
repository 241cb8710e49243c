package session

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests and single-process setups.
// Expiry is enforced by the auth middleware, not by the store.
type MemStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemStore() *MemStore {
	return &MemStore{sessions: map[string]Session{}}
}

func (m *MemStore) Create(_ context.Context, s Session) error {
	if s.SessionID == "" || s.Claim == "" {
		return ErrMalformedClaim
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemStore) Get(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
