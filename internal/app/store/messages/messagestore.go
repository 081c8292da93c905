// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/carpoolhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var errEmptyContent = errors.New("message content is required")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("messages")}
}

// Create stores an unread message.
func (s *Store) Create(ctx context.Context, m models.Message) (models.Message, error) {
	if m.Content == "" {
		return models.Message{}, errEmptyContent
	}
	m.ID = primitive.NewObjectID()
	m.IsRead = false
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// ListByConversation returns a conversation's messages oldest first.
func (s *Store) ListByConversation(ctx context.Context, convID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"conversation_id": convID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags the given messages as read on behalf of reader. Only
// messages inside convIDs are eligible and messages the reader wrote are
// never touched. Returns the number modified.
func (s *Store) MarkRead(ctx context.Context, ids []primitive.ObjectID, reader primitive.ObjectID, convIDs []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 || len(convIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.UpdateMany(ctx,
		bson.M{
			"_id":             bson.M{"$in": ids},
			"conversation_id": bson.M{"$in": convIDs},
			"user_id":         bson.M{"$ne": reader},
			"is_read":         false,
		},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// UnreadCount counts unread messages in the given conversations that were
// written by someone other than userID.
func (s *Store) UnreadCount(ctx context.Context, userID primitive.ObjectID, convIDs []primitive.ObjectID) (int64, error) {
	if len(convIDs) == 0 {
		return 0, nil
	}
	return s.c.CountDocuments(ctx, bson.M{
		"conversation_id": bson.M{"$in": convIDs},
		"is_read":         false,
		"user_id":         bson.M{"$ne": userID},
	})
}
