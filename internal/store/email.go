package store

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/rlvgl/butler/internal/api"
)

// EmailStore owns the mailbox state. List operations (fetch, send) report
// through Loading/Err; the read-receipt channel is deliberately silent.
type EmailStore struct {
	*Collection[api.Email]
	client api.Gateway
	log    *log.Logger
}

// NewEmailStore builds an EmailStore with empty state.
func NewEmailStore(client api.Gateway, logger *log.Logger) *EmailStore {
	if logger == nil {
		logger = log.Default()
	}
	return &EmailStore{
		Collection: NewCollection[api.Email](),
		client:     client,
		log:        logger,
	}
}

// FetchAll replaces Items with the gateway's mailbox listing. On failure the
// previous items stay visible and Err carries the message. A response that
// arrives after a newer fetch or a Reset is discarded.
func (s *EmailStore) FetchAll(ctx context.Context, filter api.EmailFilter) {
	gen := s.beginFetch()
	emails, err := s.client.FetchEmails(ctx, filter)
	if s.fetchStale(gen) {
		return
	}
	if err != nil {
		s.failOp(err.Error())
		return
	}
	s.completeFetch(emails)
}

// Send posts a new message. On success the server-returned canonical record
// is appended and true is returned. There is no optimistic insertion: a send
// is side-effecting and must not be assumed to have happened until confirmed.
func (s *EmailStore) Send(ctx context.Context, draft api.OutgoingEmail) bool {
	s.beginOp()
	created, err := s.client.SendEmail(ctx, draft)
	if err != nil {
		s.failOp(err.Error())
		return false
	}
	s.completeAppend(*created)
	return true
}

// MarkAsRead flags a message read, locally only after the server confirms.
// Failures are logged and swallowed: Loading and Err belong to the primary
// list operations and a read receipt must not disturb them.
func (s *EmailStore) MarkAsRead(ctx context.Context, id string) {
	if err := s.client.MarkEmailRead(ctx, id); err != nil {
		s.log.Warn("mark email read failed", "id", id, "err", err)
		return
	}
	if match := findByKey(s.Current().Items, id); match != nil {
		updated := *match
		updated.Read = true
		s.mergeItem(updated)
	}
}
