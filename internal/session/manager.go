package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keeps live sessions in memory, keyed by session ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Begin returns a fresh, unregistered, logged-out session.
func (m *Manager) Begin() *Session {
	return New(uuid.NewString())
}

// Register stores a logged-in session and drops every expired one.
func (m *Manager) Register(s *Session) error {
	if s.State != LoggedIn {
		return ErrInvalidTransition
	}
	cp := *s

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(m.now())
	m.sessions[s.ID] = &cp
	return nil
}

// Prune drops expired sessions and returns how many were removed.
func (m *Manager) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruneLocked(m.now())
}

func (m *Manager) pruneLocked(now time.Time) int {
	removed := 0
	for id, s := range m.sessions {
		if !s.Active(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Get returns a copy of the live session. Expired sessions are dropped.
func (m *Manager) Get(id string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}

	if !s.Active(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return Session{}, false
	}
	return *s, true
}

// End logs the session out and forgets it.
func (m *Manager) End(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	ended := *s
	delete(m.sessions, id)
	if err := s.Logout(); err != nil {
		return Session{}, err
	}
	return ended, nil
}

// Len returns the number of registered sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
