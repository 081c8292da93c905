// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/carpoolhub/internal/app/system/normalize"
	"github.com/dalemusser/carpoolhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateGroup = errors.New("a carpool group with this id already exists")
	errNameRequired   = errors.New("group name is required")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("carpool_groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.CarpoolGroup, error) {
	var g models.CarpoolGroup
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.CarpoolGroup{}, err
	}
	return g, nil
}

func (s *Store) Create(ctx context.Context, g models.CarpoolGroup) (models.CarpoolGroup, error) {
	g.Name = normalize.Name(g.Name)
	if g.Name == "" {
		return models.CarpoolGroup{}, errNameRequired
	}
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	if g.Status == "" {
		g.Status = models.StatusActive
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.CarpoolGroup{}, ErrDuplicateGroup
		}
		return models.CarpoolGroup{}, err
	}
	return g, nil
}

// GroupCount is a group with the number of users pointing at it.
type GroupCount struct {
	ID        primitive.ObjectID `bson:"_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UserCount int                `bson:"user_count"`
}

// ListWithCounts returns every group with its membership size, computed by
// joining users on carpool_id. Groups nobody points at have UserCount 0.
func (s *Store) ListWithCounts(ctx context.Context) ([]GroupCount, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "_id",
			"foreignField": "carpool_id",
			"as":           "members",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"created_at": 1,
			"user_count": bson.M{"$size": "$members"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []GroupCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
