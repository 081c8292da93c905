package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an active, onboarded user with the given carpool role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		Name:          name,
		PreferredName: name,
		Email:         email,
		Role:          role,
		Status:        models.StatusActive,
		Permission:    models.PermissionUser,
		IsOnboarded:   true,
		DaysWorking:   "0,1,1,1,1,1,0",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if role == models.RoleDriver {
		u.SeatAvail = 3
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateUserAt inserts a user with an explicit creation time and status.
func (f *Fixtures) CreateUserAt(ctx context.Context, u models.User) models.User {
	f.t.Helper()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Email == "" {
		u.Email = u.ID.Hex() + "@test.com"
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateGroup inserts a carpool group and points the given users at it.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, members ...primitive.ObjectID) models.CarpoolGroup {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.CarpoolGroup{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("carpool_groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	if len(members) > 0 {
		_, err := f.db.Collection("users").UpdateMany(ctx,
			bson.M{"_id": bson.M{"$in": members}},
			bson.M{"$set": bson.M{"carpool_id": g.ID}})
		if err != nil {
			f.t.Fatalf("failed to add group members: %v", err)
		}
	}
	return g
}

// CreateRequest inserts a request from one user to another.
func (f *Fixtures) CreateRequest(ctx context.Context, from, to primitive.ObjectID, message string) models.Request {
	f.t.Helper()

	req := models.Request{
		ID:         primitive.NewObjectID(),
		FromUserID: from,
		ToUserID:   to,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}
	return req
}

// CreateConversation inserts the conversation for a request.
func (f *Fixtures) CreateConversation(ctx context.Context, requestID primitive.ObjectID) models.Conversation {
	f.t.Helper()

	conv := models.Conversation{
		ID:        primitive.NewObjectID(),
		RequestID: requestID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("conversations").InsertOne(ctx, conv); err != nil {
		f.t.Fatalf("failed to create test conversation: %v", err)
	}
	return conv
}

// CreateMessage inserts an unread message authored by userID.
func (f *Fixtures) CreateMessage(ctx context.Context, convID, userID primitive.ObjectID, content string, at time.Time) models.Message {
	f.t.Helper()

	m := models.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: convID,
		UserID:         userID,
		Content:        content,
		CreatedAt:      at.UTC(),
	}
	if _, err := f.db.Collection("messages").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return m
}
