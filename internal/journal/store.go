package journal

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle session keeps its log.
const DefaultSessionTTL = 24 * time.Hour

// Session is one browser session and its mood log.
type Session struct {
	ID       string
	Log      *Log
	lastSeen time.Time
}

// Store holds per-session logs in memory, keyed by session id.
// Sessions idle longer than the TTL are evicted on lookup and by sweeps.
// Create sweeps at most once per TTL window.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	onEvict   func(id string)
}

// NewStore creates an empty store. A non-positive ttl uses DefaultSessionTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnEvict registers fn to be called with the id of every session the
// store drops for being idle. fn runs without the store's lock held.
func (s *Store) OnEvict(fn func(id string)) {
	s.mu.Lock()
	s.onEvict = fn
	s.mu.Unlock()
}

// Create starts a new session with an empty log.
func (s *Store) Create() *Session {
	now := s.now()
	session := &Session{
		ID:       uuid.NewString(),
		Log:      NewLog(),
		lastSeen: now,
	}

	var evicted []string
	s.mu.Lock()
	if s.lastSweep.IsZero() || now.Sub(s.lastSweep) >= s.ttl {
		evicted = s.sweepLocked(now)
	}
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.notifyEvicted(evicted)
	return session
}

// Get returns a live session and refreshes its idle timer.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}

	now := s.now()
	if now.Sub(session.lastSeen) > s.ttl {
		delete(s.sessions, id)
		s.mu.Unlock()
		s.notifyEvicted([]string{id})
		return nil, false
	}
	session.lastSeen = now
	s.mu.Unlock()
	return session, true
}

// GetOrCreate returns the session for id, or a new one if it is unknown or expired.
func (s *Store) GetOrCreate(id string) *Session {
	if id != "" {
		if session, ok := s.Get(id); ok {
			return session
		}
	}
	return s.Create()
}

// Sweep evicts every session idle longer than the TTL and returns how
// many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	evicted := s.sweepLocked(s.now())
	s.mu.Unlock()

	s.notifyEvicted(evicted)
	return len(evicted)
}

func (s *Store) sweepLocked(now time.Time) []string {
	s.lastSweep = now

	var evicted []string
	for id, session := range s.sessions {
		if now.Sub(session.lastSeen) > s.ttl {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

func (s *Store) notifyEvicted(ids []string) {
	if len(ids) == 0 {
		return
	}
	s.mu.RLock()
	fn := s.onEvict
	s.mu.RUnlock()

	if fn == nil {
		return
	}
	for _, id := range ids {
		fn(id)
	}
}

// Len returns the number of sessions held, including expired ones not yet evicted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
