package session

import (
	"context"
	"sync"
	"time"
)

// memoryStore is the single-process fallback used when Redis is not
// configured, and the store the tests run against.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	states   map[string]time.Time
}

type memoryEntry struct {
	data      *Session
	expiresAt time.Time
}

func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[string]memoryEntry),
		states:   make(map[string]time.Time),
	}
}

func (m *memoryStore) SaveSession(_ context.Context, s *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	m.sessions[s.ID] = memoryEntry{data: &cp, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *memoryStore) GetSession(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}

	cp := *entry.data
	return &cp, nil
}

func (m *memoryStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) ParkState(_ context.Context, state string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[state] = time.Now().Add(ttl)
	return nil
}

func (m *memoryStore) ClaimState(_ context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt, ok := m.states[state]
	if !ok {
		return false, nil
	}
	delete(m.states, state)
	if time.Now().After(expiresAt) {
		return false, nil
	}
	return true, nil
}
