package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rlvgl/butler/internal/api"
)

// ChatStore owns the conversation transcript. Messages are append-only
// within a session.
type ChatStore struct {
	*Collection[api.ChatMessage]
	client api.Gateway

	// now is swappable so tests can pin optimistic timestamps.
	now func() time.Time
}

// NewChatStore builds a ChatStore with empty state.
func NewChatStore(client api.Gateway) *ChatStore {
	return &ChatStore{
		Collection: NewCollection[api.ChatMessage](),
		client:     client,
		now:        time.Now,
	}
}

// FetchAll replaces Items with the session transcript. On failure the
// previous items stay visible and Err carries the message.
func (s *ChatStore) FetchAll(ctx context.Context) {
	gen := s.beginFetch()
	messages, err := s.client.FetchMessages(ctx)
	if s.fetchStale(gen) {
		return
	}
	if err != nil {
		s.failOp(err.Error())
		return
	}
	s.completeFetch(messages)
}

// SendMessage echoes the user's message into the transcript before the
// network call resolves, then appends the assistant reply on success. The
// optimistic echo is never rolled back: on failure the user message stays
// and Err carries what went wrong.
func (s *ChatStore) SendMessage(ctx context.Context, content string) bool {
	echo := api.ChatMessage{
		ID:        "local-" + uuid.NewString(),
		Role:      api.RoleUser,
		Content:   content,
		Timestamp: s.now().Format(time.RFC3339),
	}
	s.mergeItem(echo)
	s.beginOp()

	reply, err := s.client.SendChatMessage(ctx, content)
	if err != nil {
		s.failOp(err.Error())
		return false
	}
	s.completeAppend(*reply)
	return true
}
