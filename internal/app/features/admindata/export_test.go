package admindata

import "time"

// SetNow fixes the clock used for export file dates.
func (h *Handler) SetNow(now func() time.Time) { h.now = now }
