package handlers

import (
	"BrokerConnect/config"
	"BrokerConnect/models"
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageController struct {
	collection       *mongo.Collection
	brokerCollection *mongo.Collection
}

func NewMessageController() *MessageController {
	collectionName := os.Getenv("MONGODB_COLLECTION_MESSAGES")
	if collectionName == "" {
		collectionName = "messages"
	}
	brokerCollectionName := os.Getenv("MONGODB_COLLECTION_BROKERS")
	if brokerCollectionName == "" {
		brokerCollectionName = "brokers"
	}
	return &MessageController{
		collection:       config.GetCollection(collectionName),
		brokerCollection: config.GetCollection(brokerCollectionName),
	}
}

func (mc *MessageController) SendMessage(c echo.Context) error {
	senderID := c.Get("broker_id").(primitive.ObjectID)

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Body == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message body is required"})
	}

	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid receiver ID"})
	}
	if receiverID == senderID {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "You cannot message yourself"})
	}

	if err := mc.brokerCollection.FindOne(context.Background(), bson.M{"_id": receiverID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Receiver not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch receiver"})
	}

	message := models.Message{
		ID:         primitive.NewObjectID(),
		MessageID:  uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}
	if _, err := mc.collection.InsertOne(context.Background(), message); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send message"})
	}
	return c.JSON(http.StatusCreated, message)
}

// GetConversation returns the message history with one peer, oldest first,
// and marks the peer's messages as read.
func (mc *MessageController) GetConversation(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	peerID, err := primitive.ObjectIDFromHex(c.Param("brokerId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid broker ID"})
	}

	query := bson.M{
		"$or": []bson.M{
			{"senderId": brokerID, "receiverId": peerID},
			{"senderId": peerID, "receiverId": brokerID},
		},
	}

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := mc.collection.Find(context.Background(), query, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch conversation"})
	}
	defer cursor.Close(context.Background())

	messages := []models.Message{}
	for cursor.Next(context.Background()) {
		var message models.Message
		if err := cursor.Decode(&message); err != nil {
			continue
		}
		messages = append(messages, message)
	}

	_, err = mc.collection.UpdateMany(
		context.Background(),
		bson.M{"senderId": peerID, "receiverId": brokerID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "GetConversation", "mark messages read", nil, err)
	}

	return c.JSON(http.StatusOK, messages)
}

func (mc *MessageController) ListConversations(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := mc.collection.Find(context.Background(), bson.M{
		"$or": []bson.M{
			{"senderId": brokerID},
			{"receiverId": brokerID},
		},
	}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch conversations"})
	}
	defer cursor.Close(context.Background())

	latest := map[primitive.ObjectID]*models.Conversation{}
	order := []primitive.ObjectID{}
	for cursor.Next(context.Background()) {
		var message models.Message
		if err := cursor.Decode(&message); err != nil {
			continue
		}
		peer := message.SenderID
		if peer == brokerID {
			peer = message.ReceiverID
		}
		conv, ok := latest[peer]
		if !ok {
			conv = &models.Conversation{
				PeerID:      peer.Hex(),
				LastMessage: message.Body,
				LastAt:      message.CreatedAt,
			}
			latest[peer] = conv
			order = append(order, peer)
		}
		if message.ReceiverID == brokerID && !message.Read {
			conv.Unread++
		}
	}

	conversations := []models.Conversation{}
	for _, peer := range order {
		conv := latest[peer]
		var broker models.Broker
		if err := mc.brokerCollection.FindOne(context.Background(), bson.M{"_id": peer}).Decode(&broker); err == nil {
			conv.PeerName = broker.Name
		}
		conversations = append(conversations, *conv)
	}

	return c.JSON(http.StatusOK, conversations)
}
