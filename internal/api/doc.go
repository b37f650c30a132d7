// Package api provides an HTTP client for the assistant gateway.
//
// # Overview
//
// This package defines the API client for communicating with the personal
// assistant web gateway, which fronts Gmail, Google Calendar, and the chat
// model. It handles HTTP communication, JSON serialization, and type-safe
// representation of emails, calendar events, chat messages, and session state.
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the gateway API schema
//
// # Client Usage
//
// Create a client using the API bind address from configuration:
//
//	client, err := api.NewClient("127.0.0.1:8000")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	emails, err := client.FetchEmails(ctx, api.EmailFilter{Unread: true})
//	if err != nil {
//		log.Printf("email fetch failed: %v", err)
//	}
//
// # API Endpoints
//
// The client covers the full gateway surface:
//
//   - GET  /api/emails: Mailbox listing, optional unread/query filters
//   - POST /api/emails: Send a message, returns the created record
//   - PUT  /api/emails/{id}/read: Mark a message read
//   - GET  /api/calendar/events: Event listing, optional start/end window
//   - POST /api/calendar/events: Create an event
//   - PUT  /api/calendar/events/{id}: Partial event update
//   - DELETE /api/calendar/events/{id}: Remove an event
//   - GET  /api/chat/messages: Session transcript
//   - POST /api/chat/messages: Send user input, returns the assistant reply
//   - GET  /api/auth/status: Per-service OAuth state plus user info
//   - POST /api/auth/logout: Revoke the gateway session
//   - GET/PUT /api/user/profile: Read or patch the user profile
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json (and Content-Type for bodies)
//   - Include User-Agent: butler/0.1
//   - Have a 10-second timeout (configurable via http.Client)
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// Any non-2xx response is treated uniformly as failure. The body is not
// parsed for structured error detail; callers receive a generic message
// with the path and status code. This matches the store layer's contract
// of collapsing transport and application failures into one error string.
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "api /api/emails returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// # Timestamp Parsing
//
// Record types carry wire timestamps as strings and expose ParsedX()
// helpers that accept RFC3339Nano, RFC3339, and the gateway's legacy
// "2006-01-02 15:04:05" layout. Invalid or missing timestamps return
// time.Time{}.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching (stores own the fetched state)
//   - No retries (stores decide what a failure means for their state)
//   - No auth flow (OAuth redirects happen in the browser; the client only
//     reads /api/auth/status and posts /api/auth/logout)
//
// This keeps the client a thin, predictable transport for the store layer.
package api
