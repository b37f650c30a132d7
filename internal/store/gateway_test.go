package store

import (
	"context"
	"fmt"

	"github.com/rlvgl/butler/internal/api"
)

// fakeGateway implements api.Gateway with per-call hooks. Calls without a
// hook fail loudly so tests only exercise what they mean to.
type fakeGateway struct {
	fetchEmails     func(ctx context.Context, filter api.EmailFilter) ([]api.Email, error)
	sendEmail       func(ctx context.Context, draft api.OutgoingEmail) (*api.Email, error)
	markEmailRead   func(ctx context.Context, id string) error
	fetchEvents     func(ctx context.Context, window api.EventWindow) ([]api.CalendarEvent, error)
	createEvent     func(ctx context.Context, draft api.EventDraft) (*api.CalendarEvent, error)
	updateEvent     func(ctx context.Context, id string, patch api.EventPatch) (*api.CalendarEvent, error)
	deleteEvent     func(ctx context.Context, id string) error
	fetchMessages   func(ctx context.Context) ([]api.ChatMessage, error)
	sendChatMessage func(ctx context.Context, content string) (*api.ChatMessage, error)
	fetchAuthStatus func(ctx context.Context) (*api.AuthStatus, error)
	logout          func(ctx context.Context) error
	fetchProfile    func(ctx context.Context) (*api.UserProfile, error)
	updateProfile   func(ctx context.Context, patch api.ProfilePatch) (*api.UserProfile, error)
}

var _ api.Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) FetchEmails(ctx context.Context, filter api.EmailFilter) ([]api.Email, error) {
	if g.fetchEmails == nil {
		return nil, fmt.Errorf("unexpected FetchEmails call")
	}
	return g.fetchEmails(ctx, filter)
}

func (g *fakeGateway) SendEmail(ctx context.Context, draft api.OutgoingEmail) (*api.Email, error) {
	if g.sendEmail == nil {
		return nil, fmt.Errorf("unexpected SendEmail call")
	}
	return g.sendEmail(ctx, draft)
}

func (g *fakeGateway) MarkEmailRead(ctx context.Context, id string) error {
	if g.markEmailRead == nil {
		return fmt.Errorf("unexpected MarkEmailRead call")
	}
	return g.markEmailRead(ctx, id)
}

func (g *fakeGateway) FetchEvents(ctx context.Context, window api.EventWindow) ([]api.CalendarEvent, error) {
	if g.fetchEvents == nil {
		return nil, fmt.Errorf("unexpected FetchEvents call")
	}
	return g.fetchEvents(ctx, window)
}

func (g *fakeGateway) CreateEvent(ctx context.Context, draft api.EventDraft) (*api.CalendarEvent, error) {
	if g.createEvent == nil {
		return nil, fmt.Errorf("unexpected CreateEvent call")
	}
	return g.createEvent(ctx, draft)
}

func (g *fakeGateway) UpdateEvent(ctx context.Context, id string, patch api.EventPatch) (*api.CalendarEvent, error) {
	if g.updateEvent == nil {
		return nil, fmt.Errorf("unexpected UpdateEvent call")
	}
	return g.updateEvent(ctx, id, patch)
}

func (g *fakeGateway) DeleteEvent(ctx context.Context, id string) error {
	if g.deleteEvent == nil {
		return fmt.Errorf("unexpected DeleteEvent call")
	}
	return g.deleteEvent(ctx, id)
}

func (g *fakeGateway) FetchMessages(ctx context.Context) ([]api.ChatMessage, error) {
	if g.fetchMessages == nil {
		return nil, fmt.Errorf("unexpected FetchMessages call")
	}
	return g.fetchMessages(ctx)
}

func (g *fakeGateway) SendChatMessage(ctx context.Context, content string) (*api.ChatMessage, error) {
	if g.sendChatMessage == nil {
		return nil, fmt.Errorf("unexpected SendChatMessage call")
	}
	return g.sendChatMessage(ctx, content)
}

func (g *fakeGateway) FetchAuthStatus(ctx context.Context) (*api.AuthStatus, error) {
	if g.fetchAuthStatus == nil {
		return nil, fmt.Errorf("unexpected FetchAuthStatus call")
	}
	return g.fetchAuthStatus(ctx)
}

func (g *fakeGateway) Logout(ctx context.Context) error {
	if g.logout == nil {
		return fmt.Errorf("unexpected Logout call")
	}
	return g.logout(ctx)
}

func (g *fakeGateway) FetchProfile(ctx context.Context) (*api.UserProfile, error) {
	if g.fetchProfile == nil {
		return nil, fmt.Errorf("unexpected FetchProfile call")
	}
	return g.fetchProfile(ctx)
}

func (g *fakeGateway) UpdateProfile(ctx context.Context, patch api.ProfilePatch) (*api.UserProfile, error) {
	if g.updateProfile == nil {
		return nil, fmt.Errorf("unexpected UpdateProfile call")
	}
	return g.updateProfile(ctx, patch)
}
