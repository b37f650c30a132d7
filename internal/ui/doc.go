// Package ui implements the butler terminal interface on bubbletea.
//
// # Overview
//
// The UI is a single bubbletea program with one root Model that renders
// whichever view the navigation store says is active: dashboard, email,
// calendar, or chat. The Model owns only presentation state (cursors, form
// inputs, viewport position); all domain state lives in the stores and
// reaches the UI as messages.
//
// # Architecture
//
//	┌────────────┐  Subscribe   ┌───────────────┐
//	│  stores    │─────────────>│ Program.Send  │
//	│ (domain)   │  snapshots   │ (*StateMsg)   │
//	└────────────┘              └──────┬────────┘
//	      ^                            │
//	      │ FetchAll/Send/...          v
//	┌─────┴──────┐   tea.Cmd    ┌───────────────┐
//	│ commands   │<─────────────│ Model.Update  │
//	│ goroutines │   KeyMsg     │ Model.View    │
//	└────────────┘              └───────────────┘
//
// The loop is strictly one-directional: key handling returns commands,
// commands call store operations on their own goroutines, stores notify
// their subscribers, and the subscription bridge feeds fresh snapshots back
// into Update as messages. Update never calls a store method directly; a
// synchronous notification from inside the event loop would deadlock on the
// program's own message channel.
//
// # Views
//
// Dashboard summarizes the other three domains plus session health and is
// where sign-out lives. Email is a split list/reading pane with a compose
// form. Calendar is an agenda with a create/edit form and delete. Chat is a
// transcript viewport over an always-focused input; messages the server has
// not yet confirmed carry a "(sending)" tag, recognizable by their local id
// prefix.
//
// # Errors
//
// Each view surfaces the failure message of its own store in a footer
// banner. Esc dismisses the banner for that exact message; a new failure
// brings it back. Read receipts never produce a banner.
package ui
