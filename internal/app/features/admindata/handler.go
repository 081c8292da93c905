// internal/app/features/admindata/handler.go
package admindata

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/analytics"
	uierrors "github.com/dalemusser/carpoolhub/internal/app/features/errors"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the admin data dashboard and its exports.
type Handler struct {
	Snapshots analytics.Provider
	Loc       *time.Location
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger

	now func() time.Time
}

// NewHandler creates an admin data Handler. Week bucketing and export file
// dates use loc; nil means UTC.
func NewHandler(snapshots analytics.Provider, loc *time.Location, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Snapshots: snapshots,
		Loc:       loc,
		Log:       logger,
		ErrLog:    errLog,
		now:       time.Now,
	}
}

var errBadRange = errors.New("start and end must be epoch milliseconds with start <= end")

// parseRange reads the optional start/end query parameters. Both absent
// means the full history (nil).
func parseRange(r *http.Request, loc *time.Location) (*analytics.Range, error) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("start"), q.Get("end")
	if rawStart == "" && rawEnd == "" {
		return nil, nil
	}
	if rawStart == "" || rawEnd == "" {
		return nil, errBadRange
	}
	start, err := strconv.ParseInt(rawStart, 10, 64)
	if err != nil {
		return nil, errBadRange
	}
	end, err := strconv.ParseInt(rawEnd, 10, 64)
	if err != nil || end < start {
		return nil, errBadRange
	}
	rng := analytics.RangeFromMillis(start, end, loc)
	return &rng, nil
}

// dashboard loads the snapshot and builds the dashboard for the request.
// On failure it has already written the response and returns false.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request, op string) (analytics.Dashboard, bool) {
	rng, err := parseRange(r, h.Loc)
	if err != nil {
		uierrors.BadRequest(w, err.Error())
		return analytics.Dashboard{}, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Export(), h.Log, op)
	defer cancel()

	snap, err := h.Snapshots.Snapshot(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			h.ErrLog.LogTimeout(w, r, "admin data snapshot timed out", err)
			return analytics.Dashboard{}, false
		}
		h.ErrLog.LogServerError(w, r, "failed to load admin data snapshot", err, "A database error occurred.")
		return analytics.Dashboard{}, false
	}

	return analytics.BuildDashboard(snap.In(h.Loc), rng), true
}

// today is the export date in the analytics timezone.
func (h *Handler) today() time.Time {
	return h.now().In(h.Loc)
}
