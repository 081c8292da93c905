// internal/app/store/conversations/conversationstore.go
package conversationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/carpoolhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateConversation is returned when the request already has a conversation.
var ErrDuplicateConversation = errors.New("a conversation for this request already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("conversations")}
}

// Create opens the conversation for a request.
func (s *Store) Create(ctx context.Context, requestID primitive.ObjectID) (models.Conversation, error) {
	conv := models.Conversation{
		ID:        primitive.NewObjectID(),
		RequestID: requestID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, conv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Conversation{}, ErrDuplicateConversation
		}
		return models.Conversation{}, err
	}
	return conv, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Conversation, error) {
	var c models.Conversation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Conversation{}, err
	}
	return c, nil
}

func (s *Store) GetByRequest(ctx context.Context, requestID primitive.ObjectID) (models.Conversation, error) {
	var c models.Conversation
	if err := s.c.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&c); err != nil {
		return models.Conversation{}, err
	}
	return c, nil
}

// ListByRequests returns the conversations belonging to any of the given requests.
func (s *Store) ListByRequests(ctx context.Context, requestIDs []primitive.ObjectID) ([]models.Conversation, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"request_id": bson.M{"$in": requestIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Conversation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MessageCount is a conversation with the number of messages in it.
type MessageCount struct {
	ID           primitive.ObjectID `bson:"_id"`
	MessageCount int                `bson:"message_count"`
}

// ListMessageCounts returns every conversation with its message count.
func (s *Store) ListMessageCounts(ctx context.Context) ([]MessageCount, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "messages",
			"localField":   "_id",
			"foreignField": "conversation_id",
			"as":           "messages",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"message_count": bson.M{"$size": "$messages"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []MessageCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
