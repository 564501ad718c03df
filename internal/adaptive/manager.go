package adaptive

import (
	"errors"
	"sync"
)

// ErrNoActiveSession is returned when a student acts on a session that does
// not exist (never started, finished, or replaced by a newer one).
var ErrNoActiveSession = errors.New("no active practice session")

// Manager holds at most one in-memory session per student. Starting a new
// session implicitly discards an unfinished one — partial runs are never
// persisted.
type Manager struct {
	mu     sync.Mutex
	active map[int]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{active: make(map[int]*Session)}
}

// Put registers a session for a student, replacing any existing one.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[s.UserID] = s
}

// Get returns the student's active session.
func (m *Manager) Get(userID int) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[userID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return s, nil
}

// Do runs fn against the student's active session while holding the manager
// lock, so two requests from the same account cannot interleave mid-mutation.
func (m *Manager) Do(userID int, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[userID]
	if !ok {
		return ErrNoActiveSession
	}
	return fn(s)
}

// Remove discards the student's session, if any.
func (m *Manager) Remove(userID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, userID)
}
