// internal/app/features/messages/handler.go
package messages

import (
	"context"
	"errors"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/carpoolhub/internal/app/features/errors"
	"github.com/dalemusser/carpoolhub/internal/app/messaging"
	conversationstore "github.com/dalemusser/carpoolhub/internal/app/store/conversations"
	messagestore "github.com/dalemusser/carpoolhub/internal/app/store/messages"
	requeststore "github.com/dalemusser/carpoolhub/internal/app/store/requests"
	"github.com/dalemusser/carpoolhub/internal/app/system/ratelimit"
	"github.com/dalemusser/carpoolhub/internal/app/system/realtime"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotParticipant is returned when the viewer neither sent nor received
// the request behind a conversation.
var ErrNotParticipant = errors.New("user is not a participant in this conversation")

// Handler owns the messaging endpoints.
type Handler struct {
	Requests      *requeststore.Store
	Conversations *conversationstore.Store
	Messages      *messagestore.Store
	Hub           *realtime.Hub
	Bridge        *realtime.Bridge
	Loc           *time.Location
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger

	// SendLimit caps message sends per user; nil means unlimited.
	SendLimit *ratelimit.Limiter
}

// NewHandler creates a messages Handler. Day grouping uses loc; nil means UTC.
func NewHandler(db *mongo.Database, hub *realtime.Hub, loc *time.Location, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Requests:      requeststore.New(db),
		Conversations: conversationstore.New(db),
		Messages:      messagestore.New(db),
		Hub:           hub,
		Bridge:        realtime.NewBridge(hub, logger),
		Loc:           loc,
		Log:           logger,
		ErrLog:        errLog,
	}
}

// loadConversation resolves the {conversationID} URL parameter and checks
// that viewer is one of the two users on its request.
func (h *Handler) loadConversation(ctx context.Context, r *http.Request, viewer primitive.ObjectID) (models.Conversation, models.Request, error) {
	convID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "conversationID"))
	if err != nil {
		return models.Conversation{}, models.Request{}, mongo.ErrNoDocuments
	}
	conv, err := h.Conversations.GetByID(ctx, convID)
	if err != nil {
		return models.Conversation{}, models.Request{}, err
	}
	req, err := h.Requests.GetByID(ctx, conv.RequestID)
	if err != nil {
		return models.Conversation{}, models.Request{}, err
	}
	if !req.Involves(viewer) {
		return models.Conversation{}, models.Request{}, ErrNotParticipant
	}
	return conv, req, nil
}

// writeLoadError maps loadConversation errors to responses.
func (h *Handler) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.NotFound(w, "Conversation not found.")
	case errors.Is(err, ErrNotParticipant):
		uierrors.WriteJSON(w, http.StatusForbidden, "forbidden", "You are not part of this conversation.")
	default:
		h.ErrLog.LogServerError(w, r, "failed to load conversation", err, "A database error occurred.")
	}
}

func threadRequest(conv models.Conversation, req models.Request) messaging.Request {
	return messaging.Request{
		ID:             req.ID.Hex(),
		FromUserID:     req.FromUserID.Hex(),
		Message:        req.Message,
		ConversationID: conv.ID.Hex(),
		DateCreated:    req.CreatedAt,
	}
}

func toWire(m models.Message) messaging.Message {
	return messaging.Message{
		ID:             m.ID.Hex(),
		ConversationID: m.ConversationID.Hex(),
		UserID:         m.UserID.Hex(),
		Content:        m.Content,
		DateCreated:    m.CreatedAt,
		IsRead:         m.IsRead,
	}
}
