// internal/app/features/messages/routes.go
package messages

import (
	"github.com/dalemusser/carpoolhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for messaging. Any signed-in user may use it;
// per-conversation access is checked against the request's two users.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/unread", h.ServeUnread)
		pr.Post("/read", h.ServeMarkRead)

		pr.Get("/{conversationID}", h.ServeThread)
		send := pr
		if h.SendLimit != nil {
			send = pr.With(h.SendLimit.Middleware("send_message", h.Log))
		}
		send.Post("/{conversationID}", h.ServeSend)
		pr.Get("/{conversationID}/ws", h.ServeStream)
	})
	return r
}
