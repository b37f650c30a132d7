package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rlvgl/butler/internal/api"
)

func TestChatStore_FetchAllPopulatesTranscript(t *testing.T) {
	g := &fakeGateway{
		fetchMessages: func(context.Context) ([]api.ChatMessage, error) {
			return []api.ChatMessage{
				{ID: "c1", Role: api.RoleUser, Content: "hi"},
				{ID: "c2", Role: api.RoleAssistant, Content: "hello"},
			}, nil
		},
	}
	s := NewChatStore(g)

	s.FetchAll(context.Background())

	st := s.Current()
	if len(st.Items) != 2 || st.Items[1].Role != api.RoleAssistant {
		t.Fatalf("Items = %#v, want transcript in order", st.Items)
	}
}

func TestChatStore_SendMessageEchoesBeforeNetworkResolves(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})
	g := &fakeGateway{
		sendChatMessage: func(_ context.Context, content string) (*api.ChatMessage, error) {
			close(inFlight)
			<-release
			return &api.ChatMessage{ID: "srv-2", Role: api.RoleAssistant, Content: "reply to " + content}, nil
		},
	}
	s := NewChatStore(g)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	done := make(chan bool, 1)
	go func() { done <- s.SendMessage(context.Background(), "hi") }()
	<-inFlight

	// The user echo is already in the transcript while the call is pending.
	st := s.Current()
	if len(st.Items) != 1 {
		t.Fatalf("Items = %#v, want optimistic echo appended immediately", st.Items)
	}
	if st.Items[0].Role != api.RoleUser || st.Items[0].Content != "hi" {
		t.Fatalf("echo = %#v, want role=user content=hi", st.Items[0])
	}
	if !strings.HasPrefix(st.Items[0].ID, "local-") {
		t.Fatalf("echo id = %q, want locally generated id", st.Items[0].ID)
	}
	if !st.Loading {
		t.Fatalf("Loading = false while send in flight, want true")
	}

	close(release)
	if ok := <-done; !ok {
		t.Fatalf("SendMessage returned false, want true")
	}

	st = s.Current()
	if len(st.Items) != 2 {
		t.Fatalf("Items = %#v, want assistant reply appended", st.Items)
	}
	if st.Items[1].ID != "srv-2" || st.Items[1].Role != api.RoleAssistant {
		t.Fatalf("reply = %#v, want server-assigned assistant message", st.Items[1])
	}
	if st.Loading {
		t.Fatalf("Loading = true after completion, want false")
	}
}

func TestChatStore_SendMessageFailureKeepsEcho(t *testing.T) {
	g := &fakeGateway{
		sendChatMessage: func(context.Context, string) (*api.ChatMessage, error) {
			return nil, errors.New("api /api/chat/messages returned status 500")
		},
	}
	s := NewChatStore(g)

	if ok := s.SendMessage(context.Background(), "hi"); ok {
		t.Fatalf("SendMessage returned true, want false")
	}

	st := s.Current()
	if len(st.Items) != 1 || st.Items[0].Role != api.RoleUser {
		t.Fatalf("Items = %#v, want user echo kept with no rollback", st.Items)
	}
	if st.Err == "" {
		t.Fatalf("Err empty after failed send, want message")
	}
	if st.Loading {
		t.Fatalf("Loading = true after failure, want false")
	}
}

func TestChatStore_SequentialSendsProduceUniqueLocalIDs(t *testing.T) {
	g := &fakeGateway{
		sendChatMessage: func(context.Context, string) (*api.ChatMessage, error) {
			return nil, errors.New("down")
		},
	}
	s := NewChatStore(g)

	s.SendMessage(context.Background(), "one")
	s.SendMessage(context.Background(), "two")

	st := s.Current()
	if len(st.Items) != 2 {
		t.Fatalf("Items = %#v, want both echoes kept", st.Items)
	}
	if st.Items[0].ID == st.Items[1].ID {
		t.Fatalf("echo ids collide: %q", st.Items[0].ID)
	}
}

func TestChatStore_ResetClearsTranscript(t *testing.T) {
	g := &fakeGateway{
		fetchMessages: func(context.Context) ([]api.ChatMessage, error) {
			return []api.ChatMessage{{ID: "c1", Role: api.RoleUser}}, nil
		},
	}
	s := NewChatStore(g)
	s.FetchAll(context.Background())

	s.Reset()

	st := s.Current()
	if len(st.Items) != 0 || st.Loading || st.Err != "" || st.Selected != nil {
		t.Fatalf("state after Reset = %#v, want initial empty state", st)
	}
}
