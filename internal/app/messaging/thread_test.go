package messaging_test

import (
	"testing"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/messaging"
)

var t0 = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func msg(id, conv, user string, read bool) messaging.Message {
	return messaging.Message{ID: id, ConversationID: conv, UserID: user, Content: id, DateCreated: t0, IsRead: read}
}

func ids(ms []messaging.Message) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewThread_InitialMessage(t *testing.T) {
	req := messaging.Request{ID: "r1", FromUserID: "alice", Message: "hi!", ConversationID: "c1", DateCreated: t0}
	th := messaging.NewThread(req, []messaging.Message{msg("m1", "c1", "bob", false)}, time.Now())

	all := th.All()
	if got := ids(all); !equal(got, []string{"initial", "m1"}) {
		t.Fatalf("ids: got %v", got)
	}
	first := all[0]
	if first.UserID != "alice" || first.Content != "hi!" || !first.IsRead || first.ConversationID != "c1" {
		t.Errorf("initial message: got %+v", first)
	}
}

func TestNewThread_NoRequestText(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	th := messaging.NewThread(messaging.Request{ID: "r1"}, nil, now)
	if got := th.All(); len(got) != 0 {
		t.Errorf("expected no messages, got %v", ids(got))
	}

	th = messaging.NewThread(messaging.Request{ID: "r1", Message: "x"}, nil, now)
	first := th.All()[0]
	if first.ConversationID != "initial" || !first.DateCreated.Equal(now) {
		t.Errorf("defaults: got %+v", first)
	}
}

func TestThread_Apply(t *testing.T) {
	th := messaging.NewThread(messaging.Request{ID: "r1", ConversationID: "c1"}, nil, t0)

	tests := []struct {
		name    string
		event   messaging.Event
		applied bool
	}{
		{"by conversation", messaging.Event{RequestID: "other", NewMessage: msg("m1", "c1", "bob", false)}, true},
		{"by request", messaging.Event{RequestID: "r1", NewMessage: msg("m2", "c9", "bob", false)}, true},
		{"duplicate id", messaging.Event{RequestID: "r1", NewMessage: msg("m1", "c1", "bob", false)}, false},
		{"unrelated", messaging.Event{RequestID: "r2", NewMessage: msg("m3", "c2", "bob", false)}, false},
	}
	for _, tt := range tests {
		if got := th.Apply(tt.event); got != tt.applied {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.applied)
		}
	}
	if got := ids(th.All()); !equal(got, []string{"m1", "m2"}) {
		t.Errorf("ids: got %v", got)
	}
}

func TestThread_MatchesWithoutConversation(t *testing.T) {
	th := messaging.NewThread(messaging.Request{ID: "r1"}, nil, t0)
	// An empty conversation id on both sides must not match.
	if th.Matches(messaging.Event{RequestID: "r2", NewMessage: msg("m1", "", "bob", false)}) {
		t.Error("matched on empty conversation id")
	}
}

func TestThread_ResetReplacesMessages(t *testing.T) {
	th := messaging.NewThread(messaging.Request{ID: "r1", ConversationID: "c1", Message: "hey"}, []messaging.Message{msg("m1", "c1", "bob", true)}, t0)
	th.Apply(messaging.Event{RequestID: "r1", NewMessage: msg("m2", "c1", "bob", false)})

	th.Reset([]messaging.Message{msg("m1", "c1", "bob", true), msg("m2", "c1", "bob", true), msg("m3", "c1", "bob", false)})

	if got := ids(th.All()); !equal(got, []string{"initial", "m1", "m2", "m3"}) {
		t.Errorf("ids: got %v", got)
	}
	if th.Apply(messaging.Event{RequestID: "r1", NewMessage: msg("m3", "c1", "bob", false)}) {
		t.Error("message from reset applied twice")
	}
}

func TestThread_UnreadIDs(t *testing.T) {
	th := messaging.NewThread(messaging.Request{ID: "r1", ConversationID: "c1", FromUserID: "bob", Message: "hey"}, []messaging.Message{
		msg("m1", "c1", "bob", false),
		msg("m2", "c1", "alice", false),
		msg("m3", "c1", "bob", true),
	}, t0)

	if got := th.UnreadIDs("alice"); !equal(got, []string{"m1"}) {
		t.Errorf("alice: got %v", got)
	}
	th.Apply(messaging.Event{RequestID: "r1", NewMessage: msg("m4", "c1", "bob", false)})
	if got := th.UnreadIDs("alice"); !equal(got, []string{"m1", "m4"}) {
		t.Errorf("after new message: got %v", got)
	}
	if got := th.UnreadIDs("bob"); !equal(got, []string{"m2"}) {
		t.Errorf("bob: got %v", got)
	}
}

func TestGroupByDay(t *testing.T) {
	at := func(id string, d, h int) messaging.Message {
		return messaging.Message{ID: id, DateCreated: time.Date(2024, 3, d, h, 0, 0, 0, time.UTC)}
	}
	messages := []messaging.Message{
		at("a", 4, 9),
		at("b", 4, 23),
		at("c", 5, 1),
		at("d", 4, 12),
	}

	groups := messaging.GroupByDay(messages, time.UTC)

	if len(groups) != 3 {
		t.Fatalf("groups: got %d, want 3", len(groups))
	}
	wantIDs := [][]string{{"a", "b"}, {"c"}, {"d"}}
	for i, g := range groups {
		if got := ids(g.Messages); !equal(got, wantIDs[i]) {
			t.Errorf("group %d: got %v, want %v", i, got, wantIDs[i])
		}
	}
	if !groups[0].Date.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("group date: got %v", groups[0].Date)
	}
}

func TestGroupByDay_Location(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*60*60)
	messages := []messaging.Message{
		{ID: "a", DateCreated: time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC)},
		{ID: "b", DateCreated: time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC)},
	}
	// Both fall on March 4 in UTC-8.
	if groups := messaging.GroupByDay(messages, loc); len(groups) != 1 {
		t.Errorf("groups: got %d, want 1", len(groups))
	}
}
