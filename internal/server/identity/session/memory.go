package session

import (
	"context"
	"sync"
	"time"

	"github.com/umkmhub/marketplace/internal/common"
)

// MemoryStore keeps sessions in process memory. It is used when no Redis
// address is configured.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	if err := validate(s, m.now()); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !s.ExpiresAt.After(m.now()) {
		delete(m.sessions, id)
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
