package editor

import (
	"sync"
	"time"

	"imagestudio/internal/domain"
)

// Store keeps the open editor sessions. Sessions live only in memory and are
// discarded when the dialog closes or by Sweep once they go idle.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lastUsed map[string]time.Time
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		lastUsed: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Put registers a session under its ID.
func (s *Store) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.lastUsed[session.ID] = s.now()
}

// Update runs fn with exclusive access to the session.
func (s *Store) Update(id string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.lastUsed[id] = s.now()
	return fn(session)
}

// Snapshot returns the current view of a session.
func (s *Store) Snapshot(id string) (Snapshot, error) {
	var snap Snapshot
	err := s.Update(id, func(session *Session) error {
		snap = session.Snapshot()
		return nil
	})
	return snap, err
}

// Delete discards a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	delete(s.lastUsed, id)
	return true
}

// Sweep discards sessions not used for longer than idle and returns how many
// were removed.
func (s *Store) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	removed := 0
	for id, last := range s.lastUsed {
		if last.Before(cutoff) {
			delete(s.sessions, id)
			delete(s.lastUsed, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
