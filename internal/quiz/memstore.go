package quiz

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and single-process setups.
// List returns quizzes in insertion order, matching the Postgres store's
// created_at ordering.
type MemStore struct {
	mu      sync.Mutex
	order   []uuid.UUID
	quizzes map[uuid.UUID]*Quiz
}

func NewMemStore() *MemStore {
	return &MemStore{quizzes: map[uuid.UUID]*Quiz{}}
}

func (m *MemStore) Create(_ context.Context, q *Quiz) (*Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *q
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	m.quizzes[cp.ID] = &cp
	m.order = append(m.order, cp.ID)

	out := cp
	return &out, nil
}

func (m *MemStore) Get(_ context.Context, id uuid.UUID) (*Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *q
	return &out, nil
}

func (m *MemStore) List(_ context.Context) ([]Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Quiz, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.quizzes[id])
	}
	return out, nil
}

func (m *MemStore) Update(_ context.Context, id uuid.UUID, upd Update) (*Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Question != nil {
		q.Question = *upd.Question
	}
	if upd.OptionA != nil {
		q.OptionA = *upd.OptionA
	}
	if upd.OptionB != nil {
		q.OptionB = *upd.OptionB
	}
	if upd.OptionC != nil {
		q.OptionC = *upd.OptionC
	}
	if upd.OptionD != nil {
		q.OptionD = *upd.OptionD
	}
	if upd.CorrectOption != nil {
		q.CorrectOption = *upd.CorrectOption
	}

	out := *q
	return &out, nil
}

func (m *MemStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.quizzes[id]; !ok {
		return ErrNotFound
	}
	delete(m.quizzes, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
