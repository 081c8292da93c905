// internal/app/features/admindata/routes.go
package admindata

import (
	"github.com/dalemusser/carpoolhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the admin data dashboard. Admins only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))
		h.mount(pr)
	})
	return r
}

func (h *Handler) mount(r chi.Router) {
	r.Get("/", h.ServeDashboard)
	r.Get("/line_chart.csv", h.ServeLineChartCSV)
	r.Get("/user_counts.csv", h.ServeUserCountsCSV)
	r.Get("/days_frequency.csv", h.ServeDaysFrequencyCSV)
	r.Get("/quick_stats.csv", h.ServeQuickStatsCSV)
	r.Get("/all.zip", h.ServeArchive)
}
