package store

import (
	"context"

	"github.com/rlvgl/butler/internal/api"
)

// CalendarStore owns the agenda state.
type CalendarStore struct {
	*Collection[api.CalendarEvent]
	client api.Gateway
}

// NewCalendarStore builds a CalendarStore with empty state.
func NewCalendarStore(client api.Gateway) *CalendarStore {
	return &CalendarStore{
		Collection: NewCollection[api.CalendarEvent](),
		client:     client,
	}
}

// FetchAll replaces Items with the events inside the window. On failure the
// previous items stay visible and Err carries the message. A response that
// arrives after a newer fetch or a Reset is discarded.
func (s *CalendarStore) FetchAll(ctx context.Context, window api.EventWindow) {
	gen := s.beginFetch()
	events, err := s.client.FetchEvents(ctx, window)
	if s.fetchStale(gen) {
		return
	}
	if err != nil {
		s.failOp(err.Error())
		return
	}
	s.completeFetch(events)
}

// Create posts a new event and appends the server-returned record on success.
func (s *CalendarStore) Create(ctx context.Context, draft api.EventDraft) bool {
	s.beginOp()
	created, err := s.client.CreateEvent(ctx, draft)
	if err != nil {
		s.failOp(err.Error())
		return false
	}
	s.completeAppend(*created)
	return true
}

// Update applies a partial change. On success the matching item is replaced
// in place, order preserved, and the selection is re-pointed when it matches.
func (s *CalendarStore) Update(ctx context.Context, id string, patch api.EventPatch) bool {
	s.beginOp()
	updated, err := s.client.UpdateEvent(ctx, id, patch)
	if err != nil {
		s.failOp(err.Error())
		return false
	}
	s.completeReplace(*updated)
	return true
}

// Delete removes the event. On success the item is dropped and the selection
// cleared when it pointed at the deleted event; on failure the item remains.
func (s *CalendarStore) Delete(ctx context.Context, id string) bool {
	s.beginOp()
	if err := s.client.DeleteEvent(ctx, id); err != nil {
		s.failOp(err.Error())
		return false
	}
	s.completeRemove(id)
	return true
}
