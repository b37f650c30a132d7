package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rlvgl/butler/internal/api"
	"github.com/rlvgl/butler/internal/store"
)

// Options configure the butler TUI.
type Options struct {
	Context context.Context

	Nav      *store.NavStore
	Session  *store.SessionStore
	Email    *store.EmailStore
	Calendar *store.CalendarStore
	Chat     *store.ChatStore

	AgendaDays int
	ThemeName  string
	PrefsPath  string
}

// Store state transitions arrive in the event loop as messages. The
// subscription callbacks run on whatever goroutine mutated the store; Send
// hands the snapshot to the program without the UI ever reading a store
// directly mid-frame.
type (
	navMsg          store.View
	sessionStateMsg store.SessionState
	emailStateMsg   store.State[api.Email]
	calendarStateMsg store.State[api.CalendarEvent]
	chatStateMsg    store.State[api.ChatMessage]
)

// Operation outcomes the views react to (closing a form, clearing an input).
type (
	emailSentMsg   struct{ ok bool }
	eventSavedMsg  struct{ ok bool }
	eventDeletedMsg struct{ ok bool }
	chatSentMsg    struct{ ok bool }
	logoutMsg      struct{ ok bool }
)

// Run starts the TUI and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	model := newModel(opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(model, progOpts...)

	// Subscriptions are registered off the main goroutine: each one delivers
	// its current snapshot immediately, and Send blocks until the program's
	// loop is receiving (or the program has finished, after which Send is a
	// no-op).
	var cancels []func()
	subscribed := make(chan struct{})
	go func() {
		defer close(subscribed)
		cancels = append(cancels,
			opts.Nav.Subscribe(func(v store.View) { p.Send(navMsg(v)) }),
			opts.Session.Subscribe(func(st store.SessionState) { p.Send(sessionStateMsg(st)) }),
			opts.Email.Subscribe(func(st store.State[api.Email]) { p.Send(emailStateMsg(st)) }),
			opts.Calendar.Subscribe(func(st store.State[api.CalendarEvent]) { p.Send(calendarStateMsg(st)) }),
			opts.Chat.Subscribe(func(st store.State[api.ChatMessage]) { p.Send(chatStateMsg(st)) }),
		)
	}()

	_, err := p.Run()

	<-subscribed
	for _, cancel := range cancels {
		cancel()
	}
	return err
}
