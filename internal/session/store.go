package session

import (
	"sync"
	"time"

	"github.com/askhatov/lossbot/internal/domain/flow"
)

// Session is the live state of one ongoing conversation: which wizard is
// running, where it is, and the draft built so far.
type Session struct {
	ConversationID string
	Flow           flow.Kind
	CreateState    flow.CreateState
	CloseState     flow.CloseState
	Draft          Draft
	LastActive     time.Time
}

// Store keeps at most one session per conversation. Starting a new flow
// replaces whatever session existed (last writer wins); sessions idle
// longer than the TTL are dropped lazily on lookup.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewStore creates a session store. idleTTL <= 0 disables expiry.
func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the live session for a conversation, if any. An expired
// session is removed and reported as absent.
func (s *Store) Get(conversationID string) (*Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[conversationID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.idleTTL > 0 && s.now().Sub(sess.LastActive) > s.idleTTL {
		s.Delete(conversationID)
		return nil, false
	}
	return sess, true
}

// Start creates a fresh session for the conversation, discarding any
// previous one.
func (s *Store) Start(conversationID string, kind flow.Kind) *Session {
	sess := &Session{
		ConversationID: conversationID,
		Flow:           kind,
		LastActive:     s.now(),
	}

	s.mu.Lock()
	s.sessions[conversationID] = sess
	s.mu.Unlock()
	return sess
}

// Touch refreshes the idle timer for a session.
func (s *Store) Touch(sess *Session) {
	s.mu.Lock()
	sess.LastActive = s.now()
	s.mu.Unlock()
}

// Delete tears down the session for a conversation.
func (s *Store) Delete(conversationID string) {
	s.mu.Lock()
	delete(s.sessions, conversationID)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
