// internal/app/system/realtime/bridge.go
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/messaging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Bridge upgrades HTTP requests to websockets and streams conversation
// events for a single thread to the client.
type Bridge struct {
	Hub      *Hub
	Log      *zap.Logger
	Upgrader websocket.Upgrader
}

// NewBridge returns a Bridge with default buffer sizes.
func NewBridge(hub *Hub, log *zap.Logger) *Bridge {
	return &Bridge{
		Hub: hub,
		Log: log,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeConversation upgrades the request and forwards every sendMessage
// event that belongs to req until the client disconnects. A message id is
// forwarded at most once per stream. Inbound frames other than control
// frames are ignored.
func (b *Bridge) ServeConversation(w http.ResponseWriter, r *http.Request, viewerID string, req messaging.Request) {
	ws, err := b.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		b.Log.Warn("websocket upgrade failed", zap.Error(err), zap.String("user_id", viewerID))
		return
	}

	conn := NewConnection(viewerID, ws)
	conn.Start()

	var mu sync.Mutex
	thread := messaging.NewThread(req, nil, time.Now())

	sub := b.Hub.Subscribe(ChannelConversation, EventSendMessage, func(_ context.Context, payload []byte) {
		var ev messaging.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			b.Log.Warn("dropping malformed conversation event", zap.Error(err))
			return
		}
		mu.Lock()
		fresh := thread.Apply(ev)
		mu.Unlock()
		if !fresh {
			return
		}
		if err := conn.Send(payload); err != nil {
			b.Log.Info("conversation stream closed",
				zap.String("connection", conn.ID),
				zap.String("user_id", viewerID),
				zap.Error(err))
		}
	})
	defer sub.Unsubscribe()

	b.Log.Debug("conversation stream opened",
		zap.String("connection", conn.ID),
		zap.String("user_id", viewerID),
		zap.String("request_id", req.ID),
		zap.String("conversation_id", req.ConversationID),
		zap.Int("streams", b.Hub.Count(ChannelConversation, EventSendMessage)))

	ws.SetReadLimit(4096)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	conn.Close(websocket.CloseNormalClosure, "")
	<-conn.Done()
}
