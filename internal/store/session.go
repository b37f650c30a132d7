package store

import (
	"context"
	"time"

	"github.com/rlvgl/butler/internal/api"
)

// SessionState is the auth and profile state shared by the shell and the
// dashboard.
type SessionState struct {
	Status              api.AuthStatus
	HasStatus           bool
	Profile             api.UserProfile
	HasProfile          bool
	Err                 string
	CheckedAt           time.Time
	ConsecutiveFailures int
}

// Offline returns true when the gateway has been unreachable for multiple
// refreshes.
func (s SessionState) Offline() bool {
	return s.ConsecutiveFailures >= 2
}

// SessionStore owns authentication status and the user profile. It is
// refreshed by the background poller the same way the views refresh their
// domain stores.
type SessionStore struct {
	state  *Store[SessionState]
	client api.Gateway
}

// NewSessionStore builds a SessionStore with empty state.
func NewSessionStore(client api.Gateway) *SessionStore {
	return &SessionStore{
		state:  New(SessionState{}),
		client: client,
	}
}

// Subscribe registers an observer; it immediately receives the current state.
func (s *SessionStore) Subscribe(fn func(SessionState)) (cancel func()) {
	return s.state.Subscribe(fn)
}

// Current returns the state as of now.
func (s *SessionStore) Current() SessionState {
	return s.state.Get()
}

// Refresh re-reads auth status from the gateway. On failure the previous
// status is kept but the error is recorded for visibility.
func (s *SessionStore) Refresh(ctx context.Context) {
	status, err := s.client.FetchAuthStatus(ctx)
	s.state.Update(func(st SessionState) SessionState {
		st.CheckedAt = time.Now()
		if err != nil {
			st.Err = err.Error()
			st.ConsecutiveFailures++
			return st
		}
		st.Status = *status
		st.HasStatus = true
		st.Err = ""
		st.ConsecutiveFailures = 0
		return st
	})
}

// Logout revokes the gateway session and clears local session state.
func (s *SessionStore) Logout(ctx context.Context) bool {
	if err := s.client.Logout(ctx); err != nil {
		s.state.Update(func(st SessionState) SessionState {
			st.Err = err.Error()
			return st
		})
		return false
	}
	s.state.Set(SessionState{CheckedAt: time.Now()})
	return true
}

// LoadProfile reads the user profile.
func (s *SessionStore) LoadProfile(ctx context.Context) bool {
	profile, err := s.client.FetchProfile(ctx)
	if err != nil {
		s.state.Update(func(st SessionState) SessionState {
			st.Err = err.Error()
			return st
		})
		return false
	}
	s.state.Update(func(st SessionState) SessionState {
		st.Profile = *profile
		st.HasProfile = true
		st.Err = ""
		return st
	})
	return true
}

// SaveProfile applies a partial profile update and stores the result.
func (s *SessionStore) SaveProfile(ctx context.Context, patch api.ProfilePatch) bool {
	updated, err := s.client.UpdateProfile(ctx, patch)
	if err != nil {
		s.state.Update(func(st SessionState) SessionState {
			st.Err = err.Error()
			return st
		})
		return false
	}
	s.state.Update(func(st SessionState) SessionState {
		st.Profile = *updated
		st.HasProfile = true
		st.Err = ""
		return st
	})
	return true
}

// Reset returns the session to its initial empty state.
func (s *SessionStore) Reset() {
	s.state.Set(SessionState{})
}
