// internal/app/features/admindata/dashboard.go
package admindata

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ServeDashboard handles GET /admin/data.
//
// Query parameters start and end are epoch milliseconds; both are snapped
// to their week start. Without them the full history is returned.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r, "admin data dashboard")
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		h.Log.Warn("dashboard encode failed", zap.Error(err))
	}
}
