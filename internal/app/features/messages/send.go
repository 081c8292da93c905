// internal/app/features/messages/send.go
package messages

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/carpoolhub/internal/app/features/errors"
	"github.com/dalemusser/carpoolhub/internal/app/messaging"
	"github.com/dalemusser/carpoolhub/internal/app/system/authz"
	"github.com/dalemusser/carpoolhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/carpoolhub/internal/app/system/realtime"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"go.uber.org/zap"
)

// MaxContentLength caps a single message, in bytes after sanitizing.
const MaxContentLength = 2000

type sendRequest struct {
	Content string `json:"content"`
}

// ServeSend handles POST /messages/{conversationID}. The content is reduced
// to plain text, stored, and published to subscribers of the conversation.
func (h *Handler) ServeSend(w http.ResponseWriter, r *http.Request) {
	_, _, viewer, _ := authz.UserCtx(r)

	var body sendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&body); err != nil {
		uierrors.BadRequest(w, "Request body must be JSON with a content field.")
		return
	}
	content := htmlsanitize.PlainText(body.Content)
	if content == "" {
		uierrors.BadRequest(w, "Message cannot be empty.")
		return
	}
	if len(content) > MaxContentLength {
		uierrors.BadRequest(w, "Message is too long.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "send message")
	defer cancel()

	conv, req, err := h.loadConversation(ctx, r, viewer)
	if err != nil {
		h.writeLoadError(w, r, err)
		return
	}

	msg, err := h.Messages.Create(ctx, models.Message{
		ConversationID: conv.ID,
		UserID:         viewer,
		Content:        content,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to store message", err, "A database error occurred.")
		return
	}

	wire := toWire(msg)
	delivered, err := h.Hub.Publish(r.Context(), realtime.ChannelConversation, realtime.EventSendMessage, messaging.Event{
		RequestID:  req.ID.Hex(),
		NewMessage: wire,
	})
	if err != nil {
		// The message is stored; subscribers will see it on their next fetch.
		h.Log.Warn("publish failed", zap.Error(err), zap.String("conversation_id", conv.ID.Hex()))
	} else {
		h.Log.Debug("message published",
			zap.String("conversation_id", conv.ID.Hex()),
			zap.Int("subscribers", delivered))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(wire)
}
