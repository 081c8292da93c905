// internal/app/messaging/message.go
package messaging

import "time"

// InitialMessageID is the id of the synthetic message built from the text
// a user attached to their connect request.
const InitialMessageID = "initial"

// Message is a single chat message as sent over the wire.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	UserID         string    `json:"userId"`
	Content        string    `json:"content"`
	DateCreated    time.Time `json:"dateCreated"`
	IsRead         bool      `json:"isRead"`
}

// Event is the payload published on the conversation channel whenever a
// message is sent.
type Event struct {
	RequestID  string  `json:"requestId"`
	NewMessage Message `json:"newMessage"`
}

// Request is the part of a connect request a thread needs: who sent it,
// what they wrote, and the conversation it opened (if any yet).
type Request struct {
	ID             string
	FromUserID     string
	Message        string
	ConversationID string
	DateCreated    time.Time
}
