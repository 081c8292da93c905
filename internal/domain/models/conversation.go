// internal/domain/models/conversation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is the message thread opened by a request. There is at most
// one per request.
type Conversation struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	RequestID primitive.ObjectID `bson:"request_id" json:"request_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Message is one chat message in a conversation.
type Message struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	ConversationID primitive.ObjectID `bson:"conversation_id" json:"conversation_id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	Content        string             `bson:"content" json:"content"`
	IsRead         bool               `bson:"is_read" json:"is_read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
