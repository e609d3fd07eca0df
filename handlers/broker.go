package handlers

import (
	"BrokerConnect/config"
	"BrokerConnect/models"
	"BrokerConnect/sms"
	"BrokerConnect/utils"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BrokerController struct {
	collection *mongo.Collection
	settings   *config.Settings
	sms        sms.Sender
	images     ImageUploader
}

// ImageUploader matches imghost.Uploader; declared here so handlers can be
// exercised with a stub.
type ImageUploader interface {
	Upload(name string, data []byte) (string, error)
}

func NewBrokerController(settings *config.Settings, sender sms.Sender, images ImageUploader) *BrokerController {
	collectionName := os.Getenv("MONGODB_COLLECTION_BROKERS")
	if collectionName == "" {
		collectionName = "brokers"
	}
	return &BrokerController{
		collection: config.GetCollection(collectionName),
		settings:   settings,
		sms:        sender,
		images:     images,
	}
}

func (bc *BrokerController) RequestOTP(c echo.Context) error {
	var req models.OTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	phone := utils.NormalizePhone(req.Phone)
	if phone == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A valid phone number is required"})
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate OTP"})
	}

	if err := utils.StoreOTP(c.Request().Context(), phone, code); err != nil {
		if errors.Is(err, utils.ErrOTPCooldown) {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
		}
		config.LogError(config.GetLogger(), "handlers", "RequestOTP", "store otp", nil, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store OTP"})
	}

	body := "Your BrokerConnect verification code is " + code + ". It expires in 5 minutes."
	if err := bc.sms.Send(phone, body); err != nil {
		config.LogError(config.GetLogger(), "handlers", "RequestOTP", "send otp sms", nil, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to send OTP"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "OTP sent"})
}

func (bc *BrokerController) VerifyOTP(c echo.Context) error {
	var req models.OTPVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	phone := utils.NormalizePhone(req.Phone)
	if phone == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Phone and code are required"})
	}

	bypassed := bc.settings.OTPBypassCode != "" && req.Code == bc.settings.OTPBypassCode
	if !bypassed {
		if err := utils.VerifyOTP(c.Request().Context(), phone, req.Code); err != nil {
			switch {
			case errors.Is(err, utils.ErrOTPExpired), errors.Is(err, utils.ErrOTPMismatch):
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			case errors.Is(err, utils.ErrOTPMaxAttempts):
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
			default:
				config.LogError(config.GetLogger(), "handlers", "VerifyOTP", "verify otp", nil, err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to verify OTP"})
			}
		}
	}

	var broker models.Broker
	newBroker := false
	err := bc.collection.FindOne(context.Background(), bson.M{"phone": phone}).Decode(&broker)
	if err == mongo.ErrNoDocuments {
		broker = models.Broker{
			ID:        primitive.NewObjectID(),
			Phone:     phone,
			Role:      "broker",
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if _, err := bc.collection.InsertOne(context.Background(), broker); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create broker"})
		}
		newBroker = true
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch broker"})
	}

	if !broker.IsActive {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Account is deactivated"})
	}

	token, err := utils.GenerateJWT(bc.settings.JWTSecret, bc.settings.JWTExpiryHours, broker.ID, broker.Phone, broker.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		Broker:    broker,
		NewBroker: newBroker,
	})
}

func (bc *BrokerController) AdminLogin(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var broker models.Broker
	err := bc.collection.FindOne(context.Background(), bson.M{"email": req.Email, "role": "admin"}).Decode(&broker)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if err := utils.CheckPassword(broker.Password, req.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(bc.settings.JWTSecret, bc.settings.JWTExpiryHours, broker.ID, broker.Phone, broker.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, Broker: broker})
}

func (bc *BrokerController) GetProfile(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	var broker models.Broker
	err := bc.collection.FindOne(context.Background(), bson.M{"_id": brokerID}).Decode(&broker)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Broker not found"})
	}

	return c.JSON(http.StatusOK, broker)
}

func (bc *BrokerController) UpdateProfile(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	updateDoc := bson.M{
		"updatedAt": time.Now(),
	}

	if req.Name != "" {
		updateDoc["name"] = req.Name
	}
	if req.Email != "" {
		updateDoc["email"] = req.Email
	}
	if req.Agency != "" {
		updateDoc["agency"] = req.Agency
	}
	if req.ExperienceYears != "" {
		years, err := strconv.Atoi(req.ExperienceYears)
		if err != nil || years < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "experienceYears must be a non-negative integer"})
		}
		updateDoc["experienceYears"] = years
	}
	if req.LicenseID != "" {
		updateDoc["licenseId"] = req.LicenseID
	}
	if req.About != "" {
		updateDoc["about"] = req.About
	}

	if file, err := c.FormFile("photo"); err == nil {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read photo"})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read photo"})
		}
		url, err := bc.images.Upload("broker-"+uuid.NewString(), data)
		if err != nil {
			config.LogError(config.GetLogger(), "handlers", "UpdateProfile", "upload photo", nil, err)
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to upload photo"})
		}
		updateDoc["photoUrl"] = url
	}

	if req.Name != "" && req.Agency != "" {
		updateDoc["profileComplete"] = true
	}

	_, err := bc.collection.UpdateOne(
		context.Background(),
		bson.M{"_id": brokerID},
		bson.M{"$set": updateDoc},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update broker"})
	}

	var broker models.Broker
	err = bc.collection.FindOne(context.Background(), bson.M{"_id": brokerID}).Decode(&broker)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated broker"})
	}

	return c.JSON(http.StatusOK, broker)
}

func (bc *BrokerController) GetBrokerPublic(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid broker ID"})
	}

	var broker models.Broker
	err = bc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&broker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Broker not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch broker"})
	}

	return c.JSON(http.StatusOK, broker.Public())
}

func (bc *BrokerController) GetAllBrokers(c echo.Context) error {
	cursor, err := bc.collection.Find(context.Background(), bson.M{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch brokers"})
	}
	defer cursor.Close(context.Background())

	var brokers []models.Broker
	for cursor.Next(context.Background()) {
		var broker models.Broker
		if err := cursor.Decode(&broker); err != nil {
			continue
		}
		brokers = append(brokers, broker)
	}

	return c.JSON(http.StatusOK, brokers)
}
