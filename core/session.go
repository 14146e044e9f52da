package core

import (
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is the sentinel returned by session stores when a
// session id does not exist. Engines surface it for resumes of expired or
// never-created sub-sessions.
var ErrSessionNotFound = errors.New("session not found")

// Message is a single transcript entry within a session.
type Message struct {
	Role      string    `json:"role"` // "system", "user" or "assistant"
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is a conversational container tracking an ordered transcript plus
// mutable key/value state. It is safe for concurrent access.
//
// Contract:
//   - mutations update the Updated timestamp
//   - GetMessages returns a defensive copy
//   - Clone deep-copies maps and slices for safe divergence
type Session struct {
	ID       string         `json:"id"`
	State    map[string]any `json:"state"`
	Messages []Message      `json:"messages"`
	Created  time.Time      `json:"created"`
	Updated  time.Time      `json:"updated"`
	mu       sync.RWMutex
}

// NewSession creates an empty session with the given id.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, State: map[string]any{}, Messages: []Message{}, Created: now, Updated: now}
}

// GetState returns the value and existence flag for a state key.
func (s *Session) GetState(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.State[key]
	return v, ok
}

// SetState sets a key/value pair in session state.
func (s *Session) SetState(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State[key] = value
	s.Updated = time.Now()
}

// ApplyStateDelta merges the provided key/value pairs into State.
func (s *Session) ApplyStateDelta(delta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range delta {
		s.State[k] = v
	}
	s.Updated = time.Now()
}

// AddMessage appends a transcript entry. A zero timestamp is filled in.
func (s *Session) AddMessage(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	s.Messages = append(s.Messages, msg)
	s.Updated = time.Now()
}

// GetMessages returns a copy of the transcript to prevent callers from
// mutating internal state.
func (s *Session) GetMessages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := make([]Message, len(s.Messages))
	copy(msgs, s.Messages)
	return msgs
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{ID: s.ID, State: make(map[string]any, len(s.State)), Messages: make([]Message, len(s.Messages)), Created: s.Created, Updated: s.Updated}
	for k, v := range s.State {
		clone.State[k] = v
	}
	copy(clone.Messages, s.Messages)
	return clone
}

// SessionStore persists sessions and their evolving transcript and state.
// Get is strict: unknown ids return ErrSessionNotFound rather than creating
// lazily, so resume failures surface instead of silently forking history.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
	AppendMessage(sessionID string, msg Message) error
	ApplyDelta(sessionID string, delta map[string]any) error
}
