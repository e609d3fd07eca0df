package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SavedListing struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BrokerID   primitive.ObjectID `bson:"brokerId" json:"brokerId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
