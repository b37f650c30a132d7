package api

import (
	"time"
)

const gatewayTimestampLayout = "2006-01-02 15:04:05"

// Role values used by chat messages. The gateway only ever produces these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Email mirrors a message returned by /api/emails.
type Email struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Date      string `json:"date"`
	Read      bool   `json:"read"`
	Sent      bool   `json:"sent"`
	Important bool   `json:"important"`
}

// Key returns the message identity.
func (e Email) Key() string { return e.ID }

// ParsedDate returns the message date as time.Time when possible.
func (e Email) ParsedDate() time.Time {
	return parseTime(e.Date)
}

// OutgoingEmail is the request body for POST /api/emails.
type OutgoingEmail struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	CC      string `json:"cc,omitempty"`
	BCC     string `json:"bcc,omitempty"`
}

// EmailFilter narrows /api/emails listings.
type EmailFilter struct {
	Unread bool
	Query  string
	Max    int
}

// CalendarEvent mirrors an event returned by /api/calendar/events.
type CalendarEvent struct {
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees,omitempty"`
}

// Key returns the event identity.
func (e CalendarEvent) Key() string { return e.ID }

// ParsedStart returns the event start as time.Time when possible.
func (e CalendarEvent) ParsedStart() time.Time {
	return parseTime(e.Start)
}

// ParsedEnd returns the event end as time.Time when possible.
func (e CalendarEvent) ParsedEnd() time.Time {
	return parseTime(e.End)
}

// EventDraft is the request body for POST /api/calendar/events. It is a
// CalendarEvent without the server-assigned id.
type EventDraft struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees,omitempty"`
}

// EventPatch is the partial body for PUT /api/calendar/events/{id}. Nil fields
// are omitted from the request and left untouched by the gateway.
type EventPatch struct {
	Summary     *string   `json:"summary,omitempty"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Start       *string   `json:"start,omitempty"`
	End         *string   `json:"end,omitempty"`
	Attendees   *[]string `json:"attendees,omitempty"`
}

// EventWindow bounds /api/calendar/events listings. Zero times are omitted.
type EventWindow struct {
	Start time.Time
	End   time.Time
}

// ChatMessage mirrors a message returned by /api/chat/messages.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Key returns the message identity.
func (m ChatMessage) Key() string { return m.ID }

// ParsedTimestamp returns the message timestamp as time.Time when possible.
func (m ChatMessage) ParsedTimestamp() time.Time {
	return parseTime(m.Timestamp)
}

// AuthStatus mirrors /api/auth/status.
type AuthStatus struct {
	GmailAuthenticated    bool        `json:"gmail_authenticated"`
	CalendarAuthenticated bool        `json:"calendar_authenticated"`
	UserInfo              UserProfile `json:"user_info"`
}

// Authenticated reports whether every Google service the assistant needs has
// been granted.
func (s AuthStatus) Authenticated() bool {
	return s.GmailAuthenticated && s.CalendarAuthenticated
}

// UserProfile mirrors /api/user/profile.
type UserProfile struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// ProfilePatch is the partial body for PUT /api/user/profile.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(gatewayTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
