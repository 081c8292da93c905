// internal/app/features/messages/read.go
package messages

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/carpoolhub/internal/app/features/errors"
	"github.com/dalemusser/carpoolhub/internal/app/messaging"
	"github.com/dalemusser/carpoolhub/internal/app/system/authz"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type markReadRequest struct {
	IDs []string `json:"ids"`
}

type markReadResponse struct {
	Updated int64 `json:"updated"`
}

// ServeMarkRead handles POST /messages/read. Ids that are not stored
// messages (including the synthetic initial message) are ignored, as are
// messages the viewer wrote.
func (h *Handler) ServeMarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, viewer, _ := authz.UserCtx(r)

	var body markReadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&body); err != nil {
		uierrors.BadRequest(w, "Request body must be JSON with an ids array.")
		return
	}

	ids := lo.FilterMap(body.IDs, func(s string, _ int) (primitive.ObjectID, bool) {
		if s == messaging.InitialMessageID {
			return primitive.NilObjectID, false
		}
		id, err := primitive.ObjectIDFromHex(s)
		return id, err == nil
	})

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "mark messages read")
	defer cancel()

	convIDs, err := h.viewerConversations(ctx, viewer)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list conversations", err, "A database error occurred.")
		return
	}
	n, err := h.Messages.MarkRead(ctx, lo.Uniq(ids), viewer, convIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to mark messages read", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(markReadResponse{Updated: n})
}

type unreadResponse struct {
	Unread int64 `json:"unread"`
}

// ServeUnread handles GET /messages/unread: the number of unread messages
// written to the viewer across all their conversations.
func (h *Handler) ServeUnread(w http.ResponseWriter, r *http.Request) {
	_, _, viewer, _ := authz.UserCtx(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "unread count")
	defer cancel()

	convIDs, err := h.viewerConversations(ctx, viewer)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to list conversations", err, "A database error occurred.")
		return
	}
	n, err := h.Messages.UnreadCount(ctx, viewer, convIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to count unread messages", err, "A database error occurred.")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(unreadResponse{Unread: n})
}

// viewerConversations returns the ids of every conversation attached to a
// request the viewer sent or received.
func (h *Handler) viewerConversations(ctx context.Context, viewer primitive.ObjectID) ([]primitive.ObjectID, error) {
	reqs, err := h.Requests.ListForUser(ctx, viewer)
	if err != nil {
		return nil, err
	}
	convs, err := h.Conversations.ListByRequests(ctx, lo.Map(reqs, func(q models.Request, _ int) primitive.ObjectID { return q.ID }))
	if err != nil {
		return nil, err
	}
	return lo.Map(convs, func(c models.Conversation, _ int) primitive.ObjectID { return c.ID }), nil
}
