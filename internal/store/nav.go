package store

// View identifies one of the assistant's screens.
type View string

// The closed set of views the shell can render.
const (
	ViewDashboard View = "dashboard"
	ViewEmail     View = "email"
	ViewCalendar  View = "calendar"
	ViewChat      View = "chat"
)

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewEmail, ViewCalendar, ViewChat:
		return true
	}
	return false
}

// NavStore holds the single piece of navigation state: which view is active.
// There is no history or back-stack.
type NavStore struct {
	state *Store[View]
}

// NewNavStore builds a NavStore showing the dashboard.
func NewNavStore() *NavStore {
	return &NavStore{state: New(ViewDashboard)}
}

// Subscribe registers an observer; it immediately receives the active view.
func (s *NavStore) Subscribe(fn func(View)) (cancel func()) {
	return s.state.Subscribe(fn)
}

// Current returns the active view.
func (s *NavStore) Current() View {
	return s.state.Get()
}

// Set switches the active view. Values outside the closed set are ignored.
func (s *NavStore) Set(v View) {
	if !v.Valid() {
		return
	}
	s.state.Set(v)
}
