package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// SnapshotAge reports when the admin data snapshot was last refreshed.
type SnapshotAge interface {
	LastRefresh() (ok bool, ageSeconds float64)
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client    *mongo.Client
	Snapshots SnapshotAge
	Log       *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client and logger.
// snapshots may be nil.
func NewHandler(client *mongo.Client, snapshots SnapshotAge, logger *zap.Logger) *Handler {
	return &Handler{
		Client:    client,
		Snapshots: snapshots,
		Log:       logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status      string   `json:"status"`
	Database    string   `json:"database"`
	Message     string   `json:"message,omitempty"`
	Error       string   `json:"error,omitempty"`
	SnapshotAge *float64 `json:"snapshot_age_seconds,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "snapshot_age_seconds":12.5 }
//
// On DB failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Informational only; a stale snapshot does not fail the check.
	if h.Snapshots != nil {
		if ok, age := h.Snapshots.LastRefresh(); ok {
			resp.SnapshotAge = &age
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
