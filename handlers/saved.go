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

type SavedController struct {
	collection         *mongo.Collection
	propertyCollection *mongo.Collection
}

func NewSavedController() *SavedController {
	collectionName := os.Getenv("MONGODB_COLLECTION_SAVED")
	if collectionName == "" {
		collectionName = "saved_listings"
	}
	propertyCollectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if propertyCollectionName == "" {
		propertyCollectionName = "properties"
	}
	return &SavedController{
		collection:         config.GetCollection(collectionName),
		propertyCollection: config.GetCollection(propertyCollectionName),
	}
}

func (sc *SavedController) SaveListing(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	var req struct {
		PropertyID string `json:"propertyId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	if err := sc.propertyCollection.FindOne(context.Background(), bson.M{"_id": propertyID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	count, err := sc.collection.CountDocuments(context.Background(), bson.M{"brokerId": brokerID, "propertyId": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check saved listing"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Listing already saved"})
	}

	saved := models.SavedListing{
		ID:         primitive.NewObjectID(),
		BrokerID:   brokerID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	if _, err := sc.collection.InsertOne(context.Background(), saved); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save listing"})
	}
	return c.JSON(http.StatusCreated, saved)
}

func (sc *SavedController) GetSavedListings(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	cursor, err := sc.collection.Find(context.Background(), bson.M{"brokerId": brokerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch saved listings"})
	}
	defer cursor.Close(context.Background())

	saved := []models.SavedListing{}
	for cursor.Next(context.Background()) {
		var s models.SavedListing
		if err := cursor.Decode(&s); err != nil {
			continue
		}
		saved = append(saved, s)
	}
	return c.JSON(http.StatusOK, saved)
}

func (sc *SavedController) DeleteSavedListing(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	propertyID, err := primitive.ObjectIDFromHex(c.Param("propertyId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	_, err = sc.collection.DeleteOne(context.Background(), bson.M{"brokerId": brokerID, "propertyId": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove saved listing"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Saved listing removed successfully"})
}
