// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/carpoolhub/internal/app/system/authz"
	"go.uber.org/zap"
)

// body is the JSON shape of every error response.
type body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes an error response with the given status.
func WriteJSON(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body{Error: code, Message: msg})
}

// BadRequest writes a 400 with a user-facing message.
func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusBadRequest, "bad_request", msg)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusNotFound, "not_found", msg)
}

// Conflict writes a 409.
func Conflict(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusConflict, "conflict", msg)
}

// ErrorLogger logs server-side failures with request context and replies
// with a generic message so internals never leak to the client.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

// LogServerError logs err and writes a 500 carrying userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	_, _, userID, _ := authz.UserCtx(r)
	e.Log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("user_id", userID.Hex()))
	if userMsg == "" {
		userMsg = "An internal error occurred."
	}
	WriteJSON(w, http.StatusInternalServerError, "server_error", userMsg)
}

// LogTimeout logs a request that ran past its deadline and writes a 504.
func (e *ErrorLogger) LogTimeout(w http.ResponseWriter, r *http.Request, msg string, err error) {
	e.Log.Warn(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	WriteJSON(w, http.StatusGatewayTimeout, "timeout", "The request took too long. Please try again.")
}

// Handler serves the redirect targets used by the auth middleware.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden handles GET /forbidden.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusForbidden, "forbidden", "You don't have permission to view this page.")
}

// Unauthorized handles GET /unauthorized.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusUnauthorized, "unauthorized", "Please sign in to continue.")
}
