// internal/app/features/connections/handler.go
package connections

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/carpoolhub/internal/app/connect"
	uierrors "github.com/dalemusser/carpoolhub/internal/app/features/errors"
	conversationstore "github.com/dalemusser/carpoolhub/internal/app/store/conversations"
	requeststore "github.com/dalemusser/carpoolhub/internal/app/store/requests"
	userstore "github.com/dalemusser/carpoolhub/internal/app/store/users"
	"github.com/dalemusser/carpoolhub/internal/app/system/authz"
	"github.com/dalemusser/carpoolhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/carpoolhub/internal/app/system/ratelimit"
	"github.com/dalemusser/carpoolhub/internal/app/system/timeouts"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MaxMessageLength caps the note attached to a request.
const MaxMessageLength = 1000

// ConversationOpener opens the conversation attached to a new request.
type ConversationOpener interface {
	Create(ctx context.Context, requestID primitive.ObjectID) (models.Conversation, error)
}

// Handler owns the connect endpoint.
type Handler struct {
	Users         *userstore.Store
	Requests      *requeststore.Store
	Conversations ConversationOpener
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger

	// Limit caps connect presses per user; nil means unlimited.
	Limit *ratelimit.Limiter
}

// NewHandler creates a connect Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:         userstore.New(db),
		Requests:      requeststore.New(db),
		Conversations: conversationstore.New(db),
		Log:           logger,
		ErrLog:        errLog,
	}
}

type connectRequest struct {
	Message string `json:"message"`
}

type connectResponse struct {
	connect.Decision
	RequestID      string `json:"requestId,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ServeConnect handles POST /connect/{userID}.
//
// The decision is always returned. When it is not Allowed the response is
// 200 and nothing is written; when Allowed the request and its
// conversation are created and the response is 201.
func (h *Handler) ServeConnect(w http.ResponseWriter, r *http.Request) {
	_, _, viewerID, _ := authz.UserCtx(r)

	otherID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		uierrors.NotFound(w, "User not found.")
		return
	}
	if otherID == viewerID {
		uierrors.BadRequest(w, "You cannot connect with yourself.")
		return
	}

	var body connectRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&body); err != nil {
			uierrors.BadRequest(w, "Request body must be JSON.")
			return
		}
	}
	note := htmlsanitize.PlainText(body.Message)
	if len(note) > MaxMessageLength {
		uierrors.BadRequest(w, "Message is too long.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "connect")
	defer cancel()

	viewer, other, err := h.loadPair(ctx, viewerID, otherID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.NotFound(w, "User not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "failed to load users for connect", err, "A database error occurred.")
		return
	}

	incoming, err := h.Requests.Exists(ctx, otherID, viewerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to check incoming request", err, "A database error occurred.")
		return
	}
	outgoing, err := h.Requests.Exists(ctx, viewerID, otherID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to check outgoing request", err, "A database error occurred.")
		return
	}

	decision := connect.DecideAndTrack(h.Log,
		connect.Viewer{ID: viewerID.Hex(), Role: viewer.Role, SeatAvail: viewer.SeatAvail},
		connect.Other{
			ID:                 otherID.Hex(),
			PreferredName:      other.DisplayName(),
			HasIncomingRequest: incoming,
			HasOutgoingRequest: outgoing,
		})
	if !decision.Allowed() {
		writeJSON(w, http.StatusOK, connectResponse{Decision: decision})
		return
	}

	req, err := h.Requests.Create(ctx, models.Request{FromUserID: viewerID, ToUserID: otherID, Message: note})
	if errors.Is(err, requeststore.ErrDuplicateRequest) {
		// Lost a race with another submit from the same viewer.
		uierrors.Conflict(w, "You already have an outgoing carpool request to "+other.DisplayName()+".")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "failed to create request", err, "A database error occurred.")
		return
	}
	conv, err := h.Conversations.Create(ctx, req.ID)
	if err != nil {
		// A request without a conversation would block the pair forever.
		if derr := h.Requests.Delete(ctx, req.ID); derr != nil {
			h.Log.Error("failed to remove request after conversation error",
				zap.String("request_id", req.ID.Hex()), zap.Error(derr))
		}
		h.ErrLog.LogServerError(w, r, "failed to open conversation", err, "A database error occurred.")
		return
	}

	h.Log.Info("request created",
		zap.String("request_id", req.ID.Hex()),
		zap.String("from_user_id", viewerID.Hex()),
		zap.String("to_user_id", otherID.Hex()))

	writeJSON(w, http.StatusCreated, connectResponse{
		Decision:       decision,
		RequestID:      req.ID.Hex(),
		ConversationID: conv.ID.Hex(),
	})
}

func (h *Handler) loadPair(ctx context.Context, viewerID, otherID primitive.ObjectID) (*models.User, *models.User, error) {
	viewer, err := h.Users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, nil, err
	}
	other, err := h.Users.GetByID(ctx, otherID)
	if err != nil {
		return nil, nil, err
	}
	return viewer, other, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
