// Package app provides the orchestration layer for the butler application.
//
// # Overview
//
// This package wires together configuration, the gateway client, the domain
// stores, the session poller, and the UI to create the complete butler
// experience. It serves as the composition root where all dependencies are
// initialized and connected; business logic lives in the domain packages.
//
// # Architecture
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read butler config
//	       ├─────> prefs.Load()         Read user preferences
//	       ├─────> api.NewClient()      Create gateway HTTP client
//	       ├─────> store.New*Store()    One store per domain + session + nav
//	       ├─────> StartSessionPoller() Launch background auth refresh
//	       └─────> ui.Run()             Start TUI (blocks)
//
// Stores are constructed here and injected into the UI rather than imported
// as singletons, which keeps every store independently constructible in
// tests.
//
// # Polling Behavior
//
// Only session state is polled (default: every 30 seconds). Domain data is
// fetched on demand: the UI issues fetches when a view is opened or the user
// refreshes. On each poll tick the auth status is re-read and failures are
// logged and counted; the dashboard surfaces an offline indicator after
// repeated failures while the stores keep their last good data.
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable or malformed config, gateway
// client initialization failure. Recoverable errors (logged, polling
// continues): periodic auth status failures, network timeouts. The initial
// session refresh before the UI starts is best-effort; butler starts even
// when the gateway is down and shows the connection state instead.
package app
