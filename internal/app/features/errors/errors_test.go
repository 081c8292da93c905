package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/carpoolhub/internal/app/features/errors"
	"github.com/dalemusser/carpoolhub/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return out
}

func TestLogServerError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	errLog := uierrors.NewErrorLogger(zap.New(core))

	user := testutil.AdminUser()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/admin/data", user)
	rec := httptest.NewRecorder()

	errLog.LogServerError(rec, req, "snapshot failed", errors.New("boom"), "")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	body := decode(t, rec)
	if body["error"] != "server_error" || body["message"] == "" {
		t.Errorf("body: got %v", body)
	}
	if body["message"] == "boom" {
		t.Error("internal error text leaked to client")
	}

	entries := logs.FilterMessage("snapshot failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["user_id"]; got != user.ID {
		t.Errorf("user_id: got %v, want %v", got, user.ID)
	}
}

func TestHandler_Forbidden(t *testing.T) {
	rec := httptest.NewRecorder()
	uierrors.NewHandler().Forbidden(rec, httptest.NewRequest(http.MethodGet, "/forbidden", nil))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	if decode(t, rec)["error"] != "forbidden" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { uierrors.BadRequest(w, "nope") }, http.StatusBadRequest, "bad_request"},
		{"not found", func(w http.ResponseWriter) { uierrors.NotFound(w, "gone") }, http.StatusNotFound, "not_found"},
		{"conflict", func(w http.ResponseWriter) { uierrors.Conflict(w, "dup") }, http.StatusConflict, "conflict"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if decode(t, rec)["error"] != tt.code {
				t.Errorf("code: got %s", rec.Body.String())
			}
		})
	}
}
