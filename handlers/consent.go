package handlers

import (
	"BrokerConnect/config"
	"BrokerConnect/models"
	"BrokerConnect/utils"
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ConsentController struct {
	collection       *mongo.Collection
	brokerCollection *mongo.Collection
}

func NewConsentController() *ConsentController {
	collectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if collectionName == "" {
		collectionName = "properties"
	}
	brokerCollectionName := os.Getenv("MONGODB_COLLECTION_BROKERS")
	if brokerCollectionName == "" {
		brokerCollectionName = "brokers"
	}
	return &ConsentController{
		collection:       config.GetCollection(collectionName),
		brokerCollection: config.GetCollection(brokerCollectionName),
	}
}

// GetConsent is the public owner-facing lookup. It returns the property plus
// the listing agent's public profile; nothing else about the agent or other
// brokers leaks through this endpoint.
func (cc *ConsentController) GetConsent(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Token is required"})
	}

	var property models.Property
	err := cc.collection.FindOne(context.Background(), bson.M{"consentToken": token}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Consent link is invalid or has expired"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch consent"})
	}

	var agent models.PublicProfile
	var broker models.Broker
	if err := cc.brokerCollection.FindOne(context.Background(), bson.M{"_id": property.BrokerID}).Decode(&broker); err == nil {
		agent = broker.Public()
	}

	return c.JSON(http.StatusOK, models.ConsentView{
		ID:       property.ID.Hex(),
		Status:   property.ApprovalStatus,
		Property: property,
		Agent:    agent,
	})
}

func (cc *ConsentController) ApproveConsent(c echo.Context) error {
	return cc.setConsentStatus(c, models.ApprovalApproved)
}

func (cc *ConsentController) RejectConsent(c echo.Context) error {
	return cc.setConsentStatus(c, models.ApprovalRejected)
}

// setConsentStatus flips the approval status once. A token whose property is
// no longer pending cannot act again, which is what retires used links.
func (cc *ConsentController) setConsentStatus(c echo.Context, status string) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Token is required"})
	}

	var property models.Property
	err := cc.collection.FindOne(context.Background(), bson.M{"consentToken": token}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Consent link is invalid or has expired"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch consent"})
	}

	if property.ApprovalStatus != models.ApprovalPending {
		return c.JSON(http.StatusConflict, map[string]string{"error": "This listing has already been " + property.ApprovalStatus})
	}

	_, err = cc.collection.UpdateOne(
		context.Background(),
		bson.M{"_id": property.ID, "approvalStatus": models.ApprovalPending},
		bson.M{"$set": bson.M{"approvalStatus": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update consent status"})
	}

	if err := utils.InvalidateCachePrefix(context.Background(), feedCachePrefix); err != nil {
		config.LogError(config.GetLogger(), "handlers", "setConsentStatus", "invalidate feed cache", nil, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Listing " + status, "status": status})
}
