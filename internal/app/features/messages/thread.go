// internal/app/features/messages/thread.go
package messages

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/messaging"
	"github.com/dalemusser/carpoolhub/internal/app/system/authz"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// threadResponse is the JSON body of GET /messages/{conversationID}.
type threadResponse struct {
	RequestID      string               `json:"requestId"`
	ConversationID string               `json:"conversationId"`
	Messages       []messaging.Message  `json:"messages"`
	Days           []messaging.DayGroup `json:"days"`
	UnreadIDs      []string             `json:"unreadIds"`
}

// ServeThread handles GET /messages/{conversationID}: the opening request
// message followed by the conversation, grouped by day.
func (h *Handler) ServeThread(w http.ResponseWriter, r *http.Request) {
	_, _, viewer, _ := authz.UserCtx(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load message thread")
	defer cancel()

	conv, req, err := h.loadConversation(ctx, r, viewer)
	if err != nil {
		h.writeLoadError(w, r, err)
		return
	}

	stored, err := h.Messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list messages", err, "A database error occurred.")
		return
	}

	thread := messaging.NewThread(threadRequest(conv, req), lo.Map(stored, func(m models.Message, _ int) messaging.Message { return toWire(m) }), time.Now())
	all := thread.All()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(threadResponse{
		RequestID:      thread.RequestID(),
		ConversationID: thread.ConversationID(),
		Messages:       all,
		Days:           messaging.GroupByDay(all, h.Loc),
		UnreadIDs:      thread.UnreadIDs(viewer.Hex()),
	}); err != nil {
		h.Log.Warn("thread encode failed", zap.Error(err))
	}
}
