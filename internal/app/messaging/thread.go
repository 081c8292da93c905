// internal/app/messaging/thread.go
package messaging

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// Thread is the message history between two users, seeded from the
// connect request that opened it. A Thread is not safe for concurrent use.
type Thread struct {
	request  Request
	initial  *Message
	messages []Message
	seen     map[string]struct{}
}

// NewThread builds a thread for req with the given conversation messages.
// When the request carries text it becomes the first message, already read.
// A request without a creation time is stamped with now.
func NewThread(req Request, messages []Message, now time.Time) *Thread {
	t := &Thread{request: req}
	if req.Message != "" {
		created := req.DateCreated
		if created.IsZero() {
			created = now
		}
		convID := req.ConversationID
		if convID == "" {
			convID = InitialMessageID
		}
		t.initial = &Message{
			ID:             InitialMessageID,
			ConversationID: convID,
			UserID:         req.FromUserID,
			Content:        req.Message,
			DateCreated:    created,
			IsRead:         true,
		}
	}
	t.Reset(messages)
	return t
}

// ConversationID is the id of the conversation the thread follows, or ""
// when the request has not opened one yet.
func (t *Thread) ConversationID() string { return t.request.ConversationID }

// RequestID is the id of the request that opened the thread.
func (t *Thread) RequestID() string { return t.request.ID }

// Matches reports whether e belongs to this thread: either its message is
// in the thread's conversation or it was published for the thread's request.
func (t *Thread) Matches(e Event) bool {
	if t.request.ConversationID != "" && e.NewMessage.ConversationID == t.request.ConversationID {
		return true
	}
	return t.request.ID != "" && e.RequestID == t.request.ID
}

// Apply appends the event's message when it belongs to the thread and has
// not been seen before. It reports whether the thread changed.
func (t *Thread) Apply(e Event) bool {
	if !t.Matches(e) {
		return false
	}
	if _, dup := t.seen[e.NewMessage.ID]; dup {
		return false
	}
	t.seen[e.NewMessage.ID] = struct{}{}
	t.messages = append(t.messages, e.NewMessage)
	return true
}

// Reset replaces the conversation messages with a fresh fetch. The initial
// message is kept.
func (t *Thread) Reset(messages []Message) {
	t.messages = slices.Clone(messages)
	t.seen = make(map[string]struct{}, len(messages))
	for _, m := range messages {
		t.seen[m.ID] = struct{}{}
	}
}

// All returns the initial message (if any) followed by the conversation
// messages in arrival order.
func (t *Thread) All() []Message {
	out := make([]Message, 0, len(t.messages)+1)
	if t.initial != nil {
		out = append(out, *t.initial)
	}
	return append(out, t.messages...)
}

// UnreadIDs returns the ids of unread messages not written by viewerID.
func (t *Thread) UnreadIDs(viewerID string) []string {
	unread := lo.Filter(t.All(), func(m Message, _ int) bool {
		return !m.IsRead && m.UserID != viewerID
	})
	return lo.Map(unread, func(m Message, _ int) string { return m.ID })
}
