package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justestif/go-mood-journal/internal/journal"
	"github.com/justestif/go-mood-journal/internal/spotify"
)

func TestSessionStore_EvictionDropsPending(t *testing.T) {
	journals := journal.NewStore(time.Millisecond)
	sessions := NewSessionStore(journals)

	session := journals.Create()
	sessions.SetPending(session.ID, pendingChoice{
		Candidates: []string{"happy", "excited"},
		Kind:       spotify.KindTrack,
	})

	time.Sleep(5 * time.Millisecond)
	if got := journals.Sweep(); got != 1 {
		t.Fatalf("Sweep() = %d, want 1", got)
	}

	if _, ok := sessions.Pending(session.ID); ok {
		t.Error("pending choice outlived its session")
	}
}

func TestSessionStore_SweepEvery(t *testing.T) {
	journals := journal.NewStore(time.Millisecond)
	sessions := NewSessionStore(journals)

	for range 50 {
		session := journals.Create()
		sessions.SetPending(session.ID, pendingChoice{Candidates: []string{"sad", "tired"}})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessions.sweepEvery(ctx, 2*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for journals.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweepEvery did not stop after cancel")
	}

	if journals.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after sweeping", journals.Len())
	}
	sessions.mu.Lock()
	pending := len(sessions.pending)
	sessions.mu.Unlock()
	if pending != 0 {
		t.Errorf("%d pending choices left, want 0", pending)
	}
}

func TestSessionStore_FromRequest(t *testing.T) {
	journals := journal.NewStore(time.Hour)
	sessions := NewSessionStore(journals)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	first := sessions.FromRequest(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != first.ID {
		t.Fatalf("cookies = %v, want one cookie for %s", cookies, first.ID)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: first.ID})
	again := sessions.FromRequest(rec, req)

	if again != first {
		t.Error("known cookie resolved to a different session")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("known session got its cookie reset")
	}
}
