// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request is a connect request from one user to another. The optional
// Message becomes the first entry of the resulting conversation.
type Request struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FromUserID primitive.ObjectID `bson:"from_user_id" json:"from_user_id"`
	ToUserID   primitive.ObjectID `bson:"to_user_id" json:"to_user_id"`
	Message    string             `bson:"message" json:"message"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Involves reports whether userID sent or received the request.
func (r Request) Involves(userID primitive.ObjectID) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}
