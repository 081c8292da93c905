// internal/app/system/realtime/hub.go
// Package realtime provides in-process publish/subscribe for chat events
// and a websocket bridge that streams them to browsers.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Channel and event names used for chat messages.
const (
	ChannelConversation = "conversation"
	EventSendMessage    = "sendMessage"
)

// Handler receives the JSON payload of a published event.
type Handler func(ctx context.Context, payload []byte)

type topic struct {
	channel string
	event   string
}

// Hub fans published events out to subscribers of the same channel and
// event name. It is safe for concurrent use.
type Hub struct {
	log *zap.Logger

	mu   sync.RWMutex
	subs map[topic]map[string]*Subscription
}

// NewHub creates an empty Hub.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:  log,
		subs: make(map[topic]map[string]*Subscription),
	}
}

// Subscription is the handle returned by Subscribe. Unsubscribe detaches it.
type Subscription struct {
	ID string

	hub     *Hub
	topic   topic
	handler Handler
	once    sync.Once
}

// Subscribe registers handler for events named event on channel.
func (h *Hub) Subscribe(channel, event string, handler Handler) *Subscription {
	s := &Subscription{
		ID:      uuid.NewString(),
		hub:     h,
		topic:   topic{channel: channel, event: event},
		handler: handler,
	}

	h.mu.Lock()
	set := h.subs[s.topic]
	if set == nil {
		set = make(map[string]*Subscription)
		h.subs[s.topic] = set
	}
	set[s.ID] = s
	h.mu.Unlock()

	return s
}

// Unsubscribe removes the subscription. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		defer h.mu.Unlock()
		set := h.subs[s.topic]
		delete(set, s.ID)
		if len(set) == 0 {
			delete(h.subs, s.topic)
		}
	})
}

// Count returns the number of live subscriptions for channel and event.
func (h *Hub) Count(channel, event string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic{channel: channel, event: event}])
}

// Publish encodes payload as JSON and delivers it synchronously to every
// subscriber of channel/event. A panicking handler is logged and skipped.
// It returns the number of handlers that ran to completion.
func (h *Hub) Publish(ctx context.Context, channel, event string, payload any) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("realtime: encode %s/%s: %w", channel, event, err)
	}

	h.mu.RLock()
	set := h.subs[topic{channel: channel, event: event}]
	handlers := make([]*Subscription, 0, len(set))
	for _, s := range set {
		handlers = append(handlers, s)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range handlers {
		if h.deliver(ctx, s, data) {
			delivered++
		}
	}
	return delivered, nil
}

func (h *Hub) deliver(ctx context.Context, s *Subscription, data []byte) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("realtime handler panicked",
				zap.String("channel", s.topic.channel),
				zap.String("event", s.topic.event),
				zap.String("subscription", s.ID),
				zap.Any("panic", r))
			ok = false
		}
	}()
	s.handler(ctx, data)
	return true
}
