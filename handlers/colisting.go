package handlers

import (
	"BrokerConnect/config"
	"BrokerConnect/models"
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ColistingController struct {
	collection         *mongo.Collection
	propertyCollection *mongo.Collection
}

func NewColistingController() *ColistingController {
	collectionName := os.Getenv("MONGODB_COLLECTION_COLISTINGS")
	if collectionName == "" {
		collectionName = "colistings"
	}
	propertyCollectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if propertyCollectionName == "" {
		propertyCollectionName = "properties"
	}
	return &ColistingController{
		collection:         config.GetCollection(collectionName),
		propertyCollection: config.GetCollection(propertyCollectionName),
	}
}

func (cc *ColistingController) RequestColisting(c echo.Context) error {
	requesterID := c.Get("broker_id").(primitive.ObjectID)

	var req struct {
		PropertyID string `json:"propertyId"`
		Message    string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var property models.Property
	err = cc.propertyCollection.FindOne(context.Background(), bson.M{"_id": propertyID}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	if property.ListingType != models.ListingColisting {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Property is not open for co-listing"})
	}
	if property.BrokerID == requesterID {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "You cannot co-list your own property"})
	}

	count, err := cc.collection.CountDocuments(context.Background(), bson.M{
		"propertyId":  propertyID,
		"requesterId": requesterID,
		"status":      models.ColistingPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check existing requests"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "A pending request for this property already exists"})
	}

	colisting := models.Colisting{
		ID:          primitive.NewObjectID(),
		PropertyID:  propertyID,
		OwnerID:     property.BrokerID,
		RequesterID: requesterID,
		Message:     req.Message,
		Status:      models.ColistingPending,
		CreatedAt:   time.Now(),
	}
	if _, err := cc.collection.InsertOne(context.Background(), colisting); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create co-listing request"})
	}

	return c.JSON(http.StatusCreated, colisting)
}

func (cc *ColistingController) ListColistings(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	query := bson.M{
		"$or": []bson.M{
			{"ownerId": brokerID},
			{"requesterId": brokerID},
		},
	}
	if direction := c.QueryParam("direction"); direction == "incoming" {
		query = bson.M{"ownerId": brokerID}
	} else if direction == "outgoing" {
		query = bson.M{"requesterId": brokerID}
	}

	cursor, err := cc.collection.Find(context.Background(), query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch co-listing requests"})
	}
	defer cursor.Close(context.Background())

	colistings := []models.Colisting{}
	for cursor.Next(context.Background()) {
		var colisting models.Colisting
		if err := cursor.Decode(&colisting); err != nil {
			continue
		}
		colistings = append(colistings, colisting)
	}
	return c.JSON(http.StatusOK, colistings)
}

// RespondColisting lets the listing's broker accept or reject a pending
// request. Accepting adds the requester to the property's co-broker list.
func (cc *ColistingController) RespondColisting(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request ID"})
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var colisting models.Colisting
	err = cc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&colisting)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Co-listing request not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch co-listing request"})
	}

	if colisting.OwnerID != brokerID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Only the listing broker can respond to this request"})
	}
	if colisting.Status != models.ColistingPending {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Request has already been " + colisting.Status})
	}

	status := models.ColistingRejected
	if req.Accept {
		status = models.ColistingAccepted
	}

	now := time.Now()
	_, err = cc.collection.UpdateOne(
		context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "respondedAt": now}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update co-listing request"})
	}

	if req.Accept {
		_, err = cc.propertyCollection.UpdateOne(
			context.Background(),
			bson.M{"_id": colisting.PropertyID},
			bson.M{"$addToSet": bson.M{"coBrokerIds": colisting.RequesterID}},
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add co-broker to property"})
		}
	}

	colisting.Status = status
	colisting.RespondedAt = &now
	return c.JSON(http.StatusOK, colisting)
}
