// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Carpool roles.
const (
	RoleDriver = "DRIVER"
	RoleRider  = "RIDER"
	RoleViewer = "VIEWER"
)

// Account statuses.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Site permissions.
const (
	PermissionUser  = "user"
	PermissionAdmin = "admin"
)

// User is a rider, driver or viewer.
//
// NOTE:
//   - DaysWorking is a comma-joined Sunday-first mask ("0,1,1,1,1,1,0").
//   - CarpoolID is set once the user joins a carpool group.
type User struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name"`
	PreferredName string              `bson:"preferred_name" json:"preferred_name"`
	Email         string              `bson:"email" json:"email"`
	Role          string              `bson:"role" json:"role"` // DRIVER | RIDER | VIEWER
	Status        string              `bson:"status" json:"status"`
	Permission    string              `bson:"permission,omitempty" json:"permission,omitempty"`
	IsOnboarded   bool                `bson:"is_onboarded" json:"is_onboarded"`
	DaysWorking   string              `bson:"days_working" json:"days_working"`
	SeatAvail     int                 `bson:"seat_avail" json:"seat_avail"`
	CarpoolID     *primitive.ObjectID `bson:"carpool_id,omitempty" json:"carpool_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DisplayName is the preferred name, falling back to the full name.
func (u User) DisplayName() string {
	if u.PreferredName != "" {
		return u.PreferredName
	}
	return u.Name
}
