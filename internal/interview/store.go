package interview

import (
	"errors"
	"sync"

	"interview-backend/internal/session"
)

// ErrNotFound indicates the session does not exist or was abandoned.
var ErrNotFound = errors.New("session not found")

// Store keeps live interview sessions in memory. Sessions are ephemeral:
// a restart drops them, which matches the product's single-sitting flow.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session.Machine
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*session.Machine)}
}

// Put registers a session under its ID.
func (s *Store) Put(m *session.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[m.ID()] = m
}

// Get returns the session for the ID.
func (s *Store) Get(id string) (*session.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

// Delete removes and closes the session. Deleting an unknown ID returns
// ErrNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	m.Close()
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are live.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
