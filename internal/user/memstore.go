package user

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and single-process setups. It
// enforces the same uniqueness rules as the Postgres store.
type MemStore struct {
	mu    sync.Mutex
	users map[string]*User
}

func NewMemStore() *MemStore {
	return &MemStore{users: map[string]*User{}}
}

func (m *MemStore) Create(_ context.Context, u *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.Username]; ok {
		return nil, ErrConflict
	}
	if u.Email != "" {
		for _, other := range m.users {
			if strings.EqualFold(other.Email, u.Email) {
				return nil, ErrConflict
			}
		}
	}

	cp := *u
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	m.users[cp.Username] = &cp

	out := cp
	return &out, nil
}

func (m *MemStore) GetByUsername(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *MemStore) MarkVerified(_ context.Context, username string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	u.Verified = true
	out := *u
	return &out, nil
}

func (m *MemStore) UpdatePassword(_ context.Context, username string, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[username]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}
