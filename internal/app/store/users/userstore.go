package userstore

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "DRIVER"|"RIDER"|"VIEWER"`)
	errBadStatus      = errors.New(`status must be "ACTIVE"|"INACTIVE"`)
	errBadSeats       = errors.New("seat_avail must not be negative")
	errBadPermission  = errors.New(`permission must be "user"|"admin"`)
)

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.PreferredName = normalize.Name(u.PreferredName)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	u.Status = normalize.Status(u.Status)
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	if u.Permission == "" {
		u.Permission = models.PermissionUser
	}

	switch u.Role {
	case models.RoleDriver, models.RoleRider, models.RoleViewer:
	default:
		return models.User{}, errBadRole
	}
	switch u.Status {
	case models.StatusActive, models.StatusInactive:
	default:
		return models.User{}, errBadStatus
	}
	if u.SeatAvail < 0 {
		return models.User{}, errBadSeats
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ListAll returns every user ordered by creation time.
func (s *Store) ListAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetCarpool points a user at a carpool group. A nil groupID removes the
// user from their group.
func (s *Store) SetCarpool(ctx context.Context, userID primitive.ObjectID, groupID *primitive.ObjectID) error {
	now := time.Now().UTC()
	var update bson.M
	if groupID == nil {
		update = bson.M{"$set": bson.M{"updated_at": now}, "$unset": bson.M{"carpool_id": ""}}
	} else {
		update = bson.M{"$set": bson.M{"carpool_id": *groupID, "updated_at": now}}
	}
	res, err := s.c.UpdateByID(ctx, userID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus changes a user's account status.
func (s *Store) SetStatus(ctx context.Context, userID primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if status != models.StatusActive && status != models.StatusInactive {
		return errBadStatus
	}
	res, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetPermission changes a user's site permission ("user" | "admin").
func (s *Store) SetPermission(ctx context.Context, userID primitive.ObjectID, permission string) error {
	if permission != models.PermissionUser && permission != models.PermissionAdmin {
		return errBadPermission
	}
	res, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"permission": permission,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
