// internal/app/features/messages/stream.go
package messages

import (
	"net/http"

	"github.com/dalemusser/carpoolhub/internal/app/system/authz"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
)

// ServeStream handles GET /messages/{conversationID}/ws. After the
// participant check the connection is upgraded and receives every event
// published for the conversation until the client goes away.
func (h *Handler) ServeStream(w http.ResponseWriter, r *http.Request) {
	_, _, viewer, _ := authz.UserCtx(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "open message stream")
	conv, req, err := h.loadConversation(ctx, r, viewer)
	cancel()
	if err != nil {
		h.writeLoadError(w, r, err)
		return
	}

	h.Bridge.ServeConversation(w, r, viewer.Hex(), threadRequest(conv, req))
}
