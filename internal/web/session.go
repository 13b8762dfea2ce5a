// Package web provides the HTTP server and web UI for the mood journal.
package web

import (
	"context"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/spotify"
)

const sessionCookieName = "session_id"

// pendingChoice is a submission waiting for the user to pick a keyword.
type pendingChoice struct {
	Candidates []string
	Kind       spotify.ResultKind
}

// allows reports whether mood is one of the offered candidates.
func (p pendingChoice) allows(mood string) bool {
	return slices.Contains(p.Candidates, mood)
}

// SessionStore maps browser cookies to journal sessions and tracks any
// disambiguation still waiting on each of them.
type SessionStore struct {
	store *journal.Store

	mu      sync.Mutex
	pending map[string]pendingChoice
}

// NewSessionStore wraps a journal store. Pending choices are dropped
// whenever the journal store evicts their session.
func NewSessionStore(store *journal.Store) *SessionStore {
	s := &SessionStore{
		store:   store,
		pending: make(map[string]pendingChoice),
	}
	store.OnEvict(s.ClearPending)
	return s
}

// FromRequest returns the caller's session, starting a new one (and
// setting its cookie) when the request has none or it has expired.
func (s *SessionStore) FromRequest(w http.ResponseWriter, r *http.Request) *journal.Session {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		id = cookie.Value
	}

	session := s.store.GetOrCreate(id)
	if session.ID != id {
		setCookie(w, session.ID)
	}
	return session
}

// sweepEvery evicts idle sessions on each tick until ctx is done.
func (s *SessionStore) sweepEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Sweep(); n > 0 {
				log.Printf("DEBUG web: evicted %d idle sessions", n)
			}
		}
	}
}

// SetPending remembers the candidates offered to a session.
func (s *SessionStore) SetPending(id string, choice pendingChoice) {
	s.mu.Lock()
	s.pending[id] = choice
	s.mu.Unlock()
}

// Pending returns the choice a session still has to make.
func (s *SessionStore) Pending(id string) (pendingChoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	choice, ok := s.pending[id]
	return choice, ok
}

// ClearPending drops any outstanding choice for a session.
func (s *SessionStore) ClearPending(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

func setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(journal.DefaultSessionTTL.Seconds()),
	})
}
