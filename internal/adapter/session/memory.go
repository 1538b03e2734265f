package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"newstracker/internal/domain/model"
	"newstracker/internal/domain/ports"
)

// MemoryStore is an in-memory, concurrency-safe session store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	ttl      time.Duration
	now      func() time.Time
}

var _ ports.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore constructs a MemoryStore. Sessions idle for longer than ttl
// are discarded; a non-positive ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*model.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get retrieves a session by ID.
func (m *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.lookup(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Update applies fn to a copy of the session and stores it when fn succeeds.
func (m *MemoryStore) Update(_ context.Context, id string, fn func(*model.Session) error) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	current, ok := m.lookup(id)
	if !ok {
		current = model.NewSession(id, now)
	}

	work := current.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.ID = id
	work.UpdatedAt = now
	m.sessions[id] = work
	return work.Clone(), nil
}

// AutoPlaySessions lists sessions with auto-play enabled, dropping expired ones.
func (m *MemoryStore) AutoPlaySessions(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0)
	for id := range m.sessions {
		s, ok := m.lookup(id)
		if !ok || !s.AutoPlay {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// lookup must be called with mu held.
func (m *MemoryStore) lookup(id string) (*model.Session, bool) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl {
		delete(m.sessions, id)
		return nil, false
	}
	return s, true
}
