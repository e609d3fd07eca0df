package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ColistingPending  = "pending"
	ColistingAccepted = "accepted"
	ColistingRejected = "rejected"
)

type Colisting struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID  primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	RequesterID primitive.ObjectID `bson:"requesterId" json:"requesterId"`
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	RespondedAt *time.Time         `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}
