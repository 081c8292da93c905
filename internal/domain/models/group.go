// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarpoolGroup is a set of users sharing rides.
//
// NOTE:
//   - Membership is not embedded; users point at their group via carpool_id.
type CarpoolGroup struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Notes  string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
