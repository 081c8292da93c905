// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/carpoolhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateRequest is returned when the sender already has a request out to the recipient.
	ErrDuplicateRequest = errors.New("a request between these users already exists")
	errSelfRequest      = errors.New("a user cannot send a request to themselves")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("requests")}
}

// Create inserts a request. The unique (from_user_id, to_user_id) index
// turns a repeat into ErrDuplicateRequest.
func (s *Store) Create(ctx context.Context, r models.Request) (models.Request, error) {
	if r.FromUserID == r.ToUserID {
		return models.Request{}, errSelfRequest
	}
	r.ID = primitive.NewObjectID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Request{}, ErrDuplicateRequest
		}
		return models.Request{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Request, error) {
	var r models.Request
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.Request{}, err
	}
	return r, nil
}

// Delete removes a request. Deleting a missing request is not an error.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindBetween returns the request sent by from to to, or mongo.ErrNoDocuments.
func (s *Store) FindBetween(ctx context.Context, from, to primitive.ObjectID) (models.Request, error) {
	var r models.Request
	err := s.c.FindOne(ctx, bson.M{"from_user_id": from, "to_user_id": to}).Decode(&r)
	if err != nil {
		return models.Request{}, err
	}
	return r, nil
}

// Exists reports whether from has a request out to to.
func (s *Store) Exists(ctx context.Context, from, to primitive.ObjectID) (bool, error) {
	_, err := s.FindBetween(ctx, from, to)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

// ListForUser returns every request the user sent or received, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Request, error) {
	filter := bson.M{"$or": []bson.M{
		{"from_user_id": userID},
		{"to_user_id": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Request
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SenderRole is a request annotated with the role of the user who sent it.
type SenderRole struct {
	ID           primitive.ObjectID `bson:"_id"`
	FromUserRole string             `bson:"from_user_role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// ListWithSenderRole returns every request joined to its sender's role.
// Requests whose sender no longer exists are dropped.
func (s *Store) ListWithSenderRole(ctx context.Context) ([]SenderRole, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "from_user_id",
			"foreignField": "_id",
			"as":           "sender",
		}}},
		bson.D{{Key: "$unwind", Value: "$sender"}},
		bson.D{{Key: "$project", Value: bson.M{
			"created_at":     1,
			"from_user_role": "$sender.role",
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []SenderRole
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
