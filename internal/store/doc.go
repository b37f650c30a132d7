// Package store provides the reactive state layer for the butler application.
//
// # Overview
//
// This package implements the observable state containers that sit between
// the gateway client and the UI. Each domain (email, calendar, chat) owns one
// store; the shell additionally owns a navigation store and a session store.
// Views subscribe, render whatever state they are handed, and request changes
// only through store operations. No view ever mutates state directly.
//
// # Architecture
//
//	User action              Store operation           Gateway
//	┌──────────┐   calls    ┌───────────────┐  HTTP   ┌─────────┐
//	│   View   │──────────> │ FetchAll/Send │───────> │ api.*   │
//	└──────────┘            │ Create/Delete │ <───────└─────────┘
//	      ^                 └──────┬────────┘ response
//	      │   notify               │ recompute state atomically
//	      └────────────────────────┘
//
// # Core Types
//
// Store[T]:
//   - Observable holder of one state value
//   - Subscribe delivers the current value immediately, then every transition
//     in subscription order; unsubscribe is idempotent
//   - Set/Update and notification run under one mutex, so transitions are
//     serialized and observers never see them out of order
//
// State[T] / Collection[T]:
//   - The {Items, Loading, Err, Selected} record each domain store owns
//   - Collection maintains the two structural invariants on every mutation:
//     no two items share a key, and the selection always resolves to a live
//     item or is nil
//
// Domain stores:
//   - EmailStore: FetchAll, Send, MarkAsRead, Select, Reset
//   - CalendarStore: FetchAll, Create, Update, Delete, Select, Reset
//   - ChatStore: FetchAll, SendMessage, Select, Reset
//   - SessionStore: Refresh, Logout, LoadProfile, SaveProfile, Reset
//   - NavStore: Set over the closed view set, default dashboard
//
// # Failure Policy
//
// Every list operation catches its own failure and records it as a plain
// message in Err; callers only see a boolean success flag. A failed fetch
// leaves the previous items visible (stale-but-available) rather than
// blanking the screen. Two channels deviate on purpose:
//
//   - EmailStore.MarkAsRead never touches Loading or Err. Read receipts are
//     fire-and-forget; failures are logged and swallowed so they cannot
//     disturb the primary list state.
//   - ChatStore.SendMessage appends the user's message before the network
//     call resolves and never rolls it back. The transcript keeps the echo
//     even when the send fails.
//
// # Stale Responses
//
// Operations overlap freely: there is no queue or lock around the network
// calls, and completions apply in arrival order. To keep a slow stale fetch
// from overwriting fresher state, each Collection carries a generation
// counter. A fetch captures the generation at issue time and discards its
// response when the generation has moved on, meaning a newer fetch was
// issued or Reset wiped the store. Mutations (create/update/delete/send) are
// merges keyed by id and deliberately take no generation.
//
// # Concurrency Model
//
// Stores are driven from the UI event loop; network calls run in short-lived
// goroutines (bubbletea commands) that call back into the store on
// completion. All shared access funnels through the Store mutex. Observers
// are notified synchronously and must not call back into the same store from
// the callback.
//
// # Testing
//
// Stores take the api.Gateway interface, so tests drive them against
// httptest-backed clients or hand-rolled fakes. The zero state of every
// store is valid and empty; Reset returns to exactly that state.
package store
