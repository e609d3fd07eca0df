package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageID  string             `bson:"messageId" json:"messageId"`
	SenderID   primitive.ObjectID `bson:"senderId" json:"senderId"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	Body       string             `bson:"body" json:"body"`
	Read       bool               `bson:"read" json:"read"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Body       string `json:"body" validate:"required,max=2000"`
}

// Conversation summarizes the latest exchange with one peer.
type Conversation struct {
	PeerID      string    `json:"peerId"`
	PeerName    string    `json:"peerName,omitempty"`
	LastMessage string    `json:"lastMessage"`
	LastAt      time.Time `json:"lastAt"`
	Unread      int       `json:"unread"`
}
