package session

import (
	"fmt"
	"sync"

	"github.com/hupe1980/taskmesh/core"
)

// InMemoryStore is a volatile SessionStore implementation storing sessions in
// a process-local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo setups. Each returned session is cloned to prevent
// external mutation of internal state.
//
// Unlike a cache, Get is strict: resuming an id that was never created
// returns core.ErrSessionNotFound instead of silently starting a fresh
// transcript.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Create allocates a session with the given id. Creating an id twice is an
// error; sub-session ids are never reused.
func (s *InMemoryStore) Create(sessionID string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sessionID]; exists {
		return nil, fmt.Errorf("session %q already exists", sessionID)
	}
	sess := core.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess.Clone(), nil
}

// Get returns a clone of an existing session or core.ErrSessionNotFound.
func (s *InMemoryStore) Get(sessionID string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", sessionID, core.ErrSessionNotFound)
	}
	return sess.Clone(), nil
}

// AppendMessage adds a transcript entry to an existing session.
func (s *InMemoryStore) AppendMessage(sessionID string, msg core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%q: %w", sessionID, core.ErrSessionNotFound)
	}
	sess.AddMessage(msg)
	return nil
}

// ApplyDelta merges a key/value delta into the session state.
func (s *InMemoryStore) ApplyDelta(sessionID string, delta map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%q: %w", sessionID, core.ErrSessionNotFound)
	}
	sess.ApplyStateDelta(delta)
	return nil
}

var _ core.SessionStore = (*InMemoryStore)(nil)
