package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rlvgl/butler/internal/api"
	"github.com/rlvgl/butler/internal/store"
)

func TestSessionPoller_RefreshesUntilCancelled(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/status" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.AuthStatus{GmailAuthenticated: true, CalendarAuthenticated: true})
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	session := store.NewSessionStore(client)

	ctx, cancel := context.WithCancel(context.Background())
	StartSessionPoller(ctx, session, 10*time.Millisecond, log.New(io.Discard))

	deadline := time.After(2 * time.Second)
	for hits.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("poller made %d requests, want at least 2", hits.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if st := session.Current(); !st.HasStatus || !st.Status.Authenticated() {
		t.Fatalf("session state = %#v, want polled status recorded", st)
	}

	// After cancellation the request count settles. Allow any in-flight
	// refresh to drain before sampling.
	time.Sleep(50 * time.Millisecond)
	settled := hits.Load()
	time.Sleep(50 * time.Millisecond)
	if got := hits.Load(); got != settled {
		t.Fatalf("requests after cancel = %d, want %d (no further polling)", got, settled)
	}
}

func TestSessionPoller_LogsAndKeepsGoingOnFailure(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	session := store.NewSessionStore(client)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	StartSessionPoller(ctx, session, 10*time.Millisecond, log.New(io.Discard))

	deadline := time.After(2 * time.Second)
	for hits.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("poller made %d requests, want at least 3 despite failures", hits.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	st := session.Current()
	if st.Err == "" {
		t.Fatalf("session Err empty after failing polls, want message")
	}
	if st.ConsecutiveFailures < 2 || !st.Offline() {
		t.Fatalf("session state = %#v, want offline after repeated failures", st)
	}
}
