package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Gateway defines the interface for talking to the assistant web API.
// This interface is implemented by *Client and can be used for testing.
type Gateway interface {
	FetchEmails(ctx context.Context, filter EmailFilter) ([]Email, error)
	SendEmail(ctx context.Context, draft OutgoingEmail) (*Email, error)
	MarkEmailRead(ctx context.Context, id string) error
	FetchEvents(ctx context.Context, window EventWindow) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, draft EventDraft) (*CalendarEvent, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
	FetchMessages(ctx context.Context) ([]ChatMessage, error)
	SendChatMessage(ctx context.Context, content string) (*ChatMessage, error)
	FetchAuthStatus(ctx context.Context) (*AuthStatus, error)
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context) (*UserProfile, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*UserProfile, error)
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// Client talks to the assistant gateway HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8000"
	defaultUserAgent = "butler/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchEmails retrieves the mailbox listing, optionally filtered.
func (c *Client) FetchEmails(ctx context.Context, filter EmailFilter) ([]Email, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if filter.Unread {
		values.Set("unread", "1")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		values.Set("q", q)
	}
	if filter.Max > 0 {
		values.Set("max_results", strconv.Itoa(filter.Max))
	}
	rel := &url.URL{Path: "/api/emails", RawQuery: values.Encode()}
	var payload []Email
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SendEmail posts a new outgoing message and returns the created record.
func (c *Client) SendEmail(ctx context.Context, draft OutgoingEmail) (*Email, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Email
	if err := c.do(ctx, http.MethodPost, "/api/emails", draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MarkEmailRead flags a message as read on the server.
func (c *Client) MarkEmailRead(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("email id required")
	}
	return c.do(ctx, http.MethodPut, "/api/emails/"+id+"/read", nil, nil)
}

// FetchEvents retrieves calendar events, optionally bounded by a time window.
func (c *Client) FetchEvents(ctx context.Context, window EventWindow) ([]CalendarEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if !window.Start.IsZero() {
		values.Set("start", window.Start.Format(time.RFC3339))
	}
	if !window.End.IsZero() {
		values.Set("end", window.End.Format(time.RFC3339))
	}
	rel := &url.URL{Path: "/api/calendar/events", RawQuery: values.Encode()}
	var payload []CalendarEvent
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreateEvent posts a new calendar event and returns the created record.
func (c *Client) CreateEvent(ctx context.Context, draft EventDraft) (*CalendarEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload CalendarEvent
	if err := c.do(ctx, http.MethodPost, "/api/calendar/events", draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateEvent applies a partial update and returns the updated record.
func (c *Client) UpdateEvent(ctx context.Context, id string, patch EventPatch) (*CalendarEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("event id required")
	}
	var payload CalendarEvent
	if err := c.do(ctx, http.MethodPut, "/api/calendar/events/"+id, patch, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteEvent removes a calendar event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("event id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/calendar/events/"+id, nil, nil)
}

// FetchMessages retrieves the chat transcript for the current session.
func (c *Client) FetchMessages(ctx context.Context) ([]ChatMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []ChatMessage
	if err := c.do(ctx, http.MethodGet, "/api/chat/messages", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type chatSendRequest struct {
	Content string `json:"content"`
}

// SendChatMessage submits user input and returns the assistant's reply.
func (c *Client) SendChatMessage(ctx context.Context, content string) (*ChatMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ChatMessage
	if err := c.do(ctx, http.MethodPost, "/api/chat/messages", chatSendRequest{Content: content}, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchAuthStatus retrieves per-service authentication state and user info.
func (c *Client) FetchAuthStatus(ctx context.Context) (*AuthStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload AuthStatus
	if err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Logout revokes the gateway session.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// FetchProfile retrieves the user profile.
func (c *Client) FetchProfile(ctx context.Context) (*UserProfile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateProfile applies a partial profile update and returns the result.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*UserProfile, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UserProfile
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", patch, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Non-2xx bodies are not parsed for structured detail; a generic message
	// with the status code is all the store layer records.
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
