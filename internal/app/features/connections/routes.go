// internal/app/features/connections/routes.go
package connections

import (
	"github.com/dalemusser/carpoolhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for connect requests. Signed-in users only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		if h.Limit != nil {
			pr.Use(h.Limit.Middleware("connect", h.Log))
		}
		pr.Post("/{userID}", h.ServeConnect)
	})
	return r
}
