// Package session keeps per-conversation state in memory, keyed by UUID.
// Each session carries its own lock so the engine can treat state as
// single-threaded; an idle janitor evicts expired sessions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/bot"
	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/logx"
)

// Session is one live conversation.
type Session struct {
	ID       string
	State    *bot.State
	lastSeen time.Time
	mu       sync.Mutex
}

// Lock serializes turns for this session. The engine requires callers to
// hold it across Handle.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Store is the in-memory session registry.
type Store struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *logx.Logger
}

// NewStore creates a registry with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		logger:   logx.NewLogger("session"),
	}
}

// GetOrCreate returns the session for id, minting a fresh UUID-keyed session
// when id is empty or unknown. created reports whether a new session was made.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	now := time.Now()

	if id != "" {
		s.mu.RLock()
		sess = s.sessions[id]
		s.mu.RUnlock()
		if sess != nil {
			s.touch(sess, now)
			return sess, false
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Lost the race: someone created it between the RLock and here.
	if id != "" {
		if sess = s.sessions[id]; sess != nil {
			sess.lastSeen = now
			return sess, false
		}
	}

	if id == "" {
		id = uuid.NewString()
	}
	sess = &Session{ID: id, State: bot.NewState(), lastSeen: now}
	s.sessions[id] = sess
	s.logger.Debug("created session %s", id)
	return sess, true
}

// Get returns an existing session, or nil.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) touch(sess *Session, now time.Time) {
	s.mu.Lock()
	sess.lastSeen = now
	s.mu.Unlock()
}

// Sweep drops sessions idle longer than the TTL and returns how many were
// evicted.
func (s *Store) Sweep() int {
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Info("evicted %d idle sessions, %d remain", evicted, len(s.sessions))
	}
	return evicted
}

// Run sweeps periodically until ctx is canceled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
