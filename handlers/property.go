package handlers

import (
	"BrokerConnect/bulk"
	"BrokerConnect/config"
	"BrokerConnect/models"
	"BrokerConnect/sms"
	"BrokerConnect/utils"
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const feedCachePrefix = "feed"

type PropertyController struct {
	collection       *mongo.Collection
	brokerCollection *mongo.Collection
	settings         *config.Settings
	sms              sms.Sender
	images           ImageUploader
}

func NewPropertyController(settings *config.Settings, sender sms.Sender, images ImageUploader) *PropertyController {
	collectionName := os.Getenv("MONGODB_COLLECTION_PROPERTIES")
	if collectionName == "" {
		collectionName = "properties"
	}
	brokerCollectionName := os.Getenv("MONGODB_COLLECTION_BROKERS")
	if brokerCollectionName == "" {
		brokerCollectionName = "brokers"
	}
	return &PropertyController{
		collection:       config.GetCollection(collectionName),
		brokerCollection: config.GetCollection(brokerCollectionName),
		settings:         settings,
		sms:              sender,
		images:           images,
	}
}

// CreateResult is what the creation service hands back to its two callers,
// the interactive endpoint and the bulk orchestrator. Status carries the HTTP
// status the outcome maps to (409 marks a duplicate).
type CreateResult struct {
	OK      bool
	Status  int
	Message string
	Payload *models.PropertyResponse
}

// createListing persists one validated property for a broker, generating its
// consent token and dispatching the owner-consent SMS. An SMS failure never
// fails the creation; it is reported through the payload's OwnerConsent.
func (pc *PropertyController) createListing(ctx context.Context, brokerID primitive.ObjectID, property *models.Property, images []string) CreateResult {
	if dup, err := pc.isDuplicate(ctx, brokerID, property); err != nil {
		config.LogError(config.GetLogger(), "handlers", "createListing", "duplicate check", nil, err)
		return CreateResult{Status: http.StatusInternalServerError, Message: "Failed to check for duplicates"}
	} else if dup {
		return CreateResult{Status: http.StatusConflict, Message: "A listing for this owner and address already exists"}
	}

	token, err := utils.GenerateConsentToken()
	if err != nil {
		return CreateResult{Status: http.StatusInternalServerError, Message: "Failed to generate consent token"}
	}

	property.ID = primitive.NewObjectID()
	property.BrokerID = brokerID
	property.Images = images
	property.ApprovalStatus = models.ApprovalPending
	property.ConsentToken = token
	property.ConsentSentAt = time.Now()
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()

	if _, err := pc.collection.InsertOne(ctx, property); err != nil {
		config.LogError(config.GetLogger(), "handlers", "createListing", "insert property", nil, err)
		return CreateResult{Status: http.StatusInternalServerError, Message: "Failed to create property"}
	}

	consent := pc.dispatchConsentSMS(ctx, brokerID, property)

	if err := utils.InvalidateCachePrefix(ctx, feedCachePrefix); err != nil {
		config.LogError(config.GetLogger(), "handlers", "createListing", "invalidate feed cache", nil, err)
	}

	return CreateResult{
		OK:      true,
		Status:  http.StatusCreated,
		Message: "Property created",
		Payload: &models.PropertyResponse{Property: *property, OwnerConsent: consent},
	}
}

// isDuplicate matches on owner phone plus the unit address details within the
// creating broker's own listings. Listings without any unit detail are never
// flagged, since owner and location alone are too weak a key.
func (pc *PropertyController) isDuplicate(ctx context.Context, brokerID primitive.ObjectID, property *models.Property) (bool, error) {
	if property.FlatNumber == "" && property.FloorNumber == "" && property.BuildingSociety == "" {
		return false, nil
	}
	count, err := pc.collection.CountDocuments(ctx, bson.M{
		"brokerId":        brokerID,
		"ownerPhone":      property.OwnerPhone,
		"flatNumber":      property.FlatNumber,
		"floorNumber":     property.FloorNumber,
		"buildingSociety": property.BuildingSociety,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pc *PropertyController) dispatchConsentSMS(ctx context.Context, brokerID primitive.ObjectID, property *models.Property) models.OwnerConsent {
	agentName := "Your broker"
	var broker models.Broker
	if err := pc.brokerCollection.FindOne(ctx, bson.M{"_id": brokerID}).Decode(&broker); err == nil && broker.Name != "" {
		agentName = broker.Name
	}

	body := sms.ComposeConsentMessage(sms.ConsentInput{
		OwnerName:    property.OwnerName,
		AgentName:    agentName,
		Title:        property.Title,
		Location:     property.Location,
		PropertyType: property.PropertyType,
		BHK:          property.BHK,
		Size:         property.Size,
		SizeUnit:     property.SizeUnit,
		Price:        property.Price,
		ListingType:  property.ListingType,
		ConsentURL:   pc.settings.AppBaseURL + "/consent/" + property.ConsentToken,
	})

	if err := pc.sms.Send(property.OwnerPhone, body); err != nil {
		config.LogError(config.GetLogger(), "handlers", "dispatchConsentSMS", "send consent sms", nil, err)
		return models.OwnerConsent{SMSStatus: "failed", SMSError: err.Error()}
	}
	return models.OwnerConsent{SMSStatus: "sent"}
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	input := bindPropertyInput(c)
	property, errs := bulk.ValidateInput(input)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": strings.Join(errs, "; ")})
	}

	images, err := pc.uploadImages(c)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	result := pc.createListing(context.Background(), brokerID, property, images)
	if !result.OK {
		return c.JSON(result.Status, map[string]string{"error": result.Message, "message": result.Message})
	}
	return c.JSON(result.Status, result.Payload)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var property models.Property
	err = pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	brokerID := c.Get("broker_id").(primitive.ObjectID)
	brokerRole := c.Get("broker_role").(string)
	if property.BrokerID != brokerID && brokerRole != "admin" && !isCoBroker(property, brokerID) {
		if !property.IsPubliclyVisible || property.ApprovalStatus != models.ApprovalApproved {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to view this property"})
		}
	}

	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)
	brokerRole := c.Get("broker_role").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var existing models.Property
	err = pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&existing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	if existing.BrokerID != brokerID && brokerRole != "admin" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	input := bindPropertyInput(c)
	property, errs := bulk.ValidateInput(input)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": strings.Join(errs, "; ")})
	}

	newImages, err := pc.uploadImages(c)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	images := existing.Images
	if len(newImages) > 0 {
		images = newImages
	}

	// Every edit invalidates the previous consent link and requires the
	// owner to approve again.
	token, err := utils.GenerateConsentToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate consent token"})
	}

	updateDoc := bson.M{
		"title":             property.Title,
		"propertyType":      property.PropertyType,
		"transactionType":   property.TransactionType,
		"price":             property.Price,
		"rentFrequency":     property.RentFrequency,
		"size":              property.Size,
		"sizeUnit":          property.SizeUnit,
		"location":          property.Location,
		"fullAddress":       property.FullAddress,
		"flatNumber":        property.FlatNumber,
		"floorNumber":       property.FloorNumber,
		"buildingSociety":   property.BuildingSociety,
		"description":       property.Description,
		"bhk":               property.BHK,
		"listingType":       property.ListingType,
		"isPubliclyVisible": property.IsPubliclyVisible,
		"ownerName":         property.OwnerName,
		"ownerPhone":        property.OwnerPhone,
		"commissionTerms":   property.CommissionTerms,
		"scopeOfWork":       property.ScopeOfWork,
		"images":            images,
		"approvalStatus":    models.ApprovalPending,
		"consentToken":      token,
		"consentSentAt":     time.Now(),
		"updatedAt":         time.Now(),
	}

	_, err = pc.collection.UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}

	var updated models.Property
	err = pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&updated)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated property"})
	}

	consent := pc.dispatchConsentSMS(context.Background(), existing.BrokerID, &updated)

	if err := utils.InvalidateCachePrefix(context.Background(), feedCachePrefix); err != nil {
		config.LogError(config.GetLogger(), "handlers", "UpdateProperty", "invalidate feed cache", nil, err)
	}

	return c.JSON(http.StatusOK, models.PropertyResponse{Property: updated, OwnerConsent: consent})
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)
	brokerRole := c.Get("broker_role").(string)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var property models.Property
	err = pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	if property.BrokerID != brokerID && brokerRole != "admin" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
	}

	_, err = pc.collection.DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}

	if err := utils.InvalidateCachePrefix(context.Background(), feedCachePrefix); err != nil {
		config.LogError(config.GetLogger(), "handlers", "DeleteProperty", "invalidate feed cache", nil, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) MyProperties(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	cursor, err := pc.collection.Find(context.Background(), bson.M{
		"$or": []bson.M{
			{"brokerId": brokerID},
			{"coBrokerIds": brokerID},
		},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}
	defer cursor.Close(context.Background())

	properties := []models.Property{}
	for cursor.Next(context.Background()) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) Feed(c echo.Context) error {
	brokerID := c.Get("broker_id").(primitive.ObjectID)

	queryParams := map[string]string{"viewer": brokerID.Hex()}
	for _, name := range []string{"location", "type", "transaction", "listing_type", "bhk", "price_min", "price_max", "page", "limit"} {
		if v := c.QueryParam(name); v != "" {
			queryParams[name] = v
		}
	}
	cacheKey := utils.GenerateQueryCacheKey(feedCachePrefix, queryParams)

	var cached []models.Property
	if found, err := utils.GetCached(context.Background(), cacheKey, &cached); err == nil && found {
		return c.JSON(http.StatusOK, cached)
	}

	query := bson.M{
		"isPubliclyVisible": true,
		"approvalStatus":    models.ApprovalApproved,
		"brokerId":          bson.M{"$ne": brokerID},
	}
	if location := c.QueryParam("location"); location != "" {
		query["location"] = bson.M{"$regex": location, "$options": "i"}
	}
	if propType := c.QueryParam("type"); propType != "" {
		query["propertyType"] = propType
	}
	if transaction := c.QueryParam("transaction"); transaction != "" {
		query["transactionType"] = transaction
	}
	if listingType := c.QueryParam("listing_type"); listingType != "" {
		query["listingType"] = listingType
	}
	if bhk := c.QueryParam("bhk"); bhk != "" {
		if num, err := strconv.Atoi(bhk); err == nil {
			query["bhk"] = num
		}
	}

	page := 1
	limit := 20
	if p := c.QueryParam("page"); p != "" {
		if num, err := strconv.Atoi(p); err == nil && num > 0 {
			page = num
		}
	}
	if l := c.QueryParam("limit"); l != "" {
		if num, err := strconv.Atoi(l); err == nil && num > 0 {
			limit = num
		}
	}
	skip := (page - 1) * limit

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})
	cursor, err := pc.collection.Find(context.Background(), query, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch feed"})
	}
	defer cursor.Close(context.Background())

	properties := []models.Property{}
	for cursor.Next(context.Background()) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	properties = filterPrice(properties, c.QueryParam("price_min"), c.QueryParam("price_max"))

	if err := utils.SetCached(context.Background(), cacheKey, properties, 2*time.Minute); err != nil {
		config.LogError(config.GetLogger(), "handlers", "Feed", "cache feed page", nil, err)
	}

	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) ApproveProperty(c echo.Context) error {
	return pc.adminSetApproval(c, models.ApprovalApproved)
}

func (pc *PropertyController) RejectProperty(c echo.Context) error {
	return pc.adminSetApproval(c, models.ApprovalRejected)
}

func (pc *PropertyController) adminSetApproval(c echo.Context, status string) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	result, err := pc.collection.UpdateOne(
		context.Background(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approvalStatus": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update approval status"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	if err := utils.InvalidateCachePrefix(context.Background(), feedCachePrefix); err != nil {
		config.LogError(config.GetLogger(), "handlers", "adminSetApproval", "invalidate feed cache", nil, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Approval status updated", "status": status})
}

// bindPropertyInput reads the multipart/urlencoded form of the interactive
// create and edit endpoints into the same input shape the CSV mapper emits.
func bindPropertyInput(c echo.Context) models.PropertyInput {
	in := models.PropertyInput{
		Title:           strings.TrimSpace(c.FormValue("title")),
		PropertyType:    strings.TrimSpace(c.FormValue("propertyType")),
		TransactionType: strings.ToLower(strings.TrimSpace(c.FormValue("transactionType"))),
		Price:           strings.TrimSpace(c.FormValue("price")),
		RentFrequency:   strings.ToLower(strings.TrimSpace(c.FormValue("rentFrequency"))),
		Size:            strings.TrimSpace(c.FormValue("size")),
		SizeUnit:        strings.TrimSpace(c.FormValue("sizeUnit")),
		Location:        strings.TrimSpace(c.FormValue("location")),
		FullAddress:     strings.TrimSpace(c.FormValue("fullAddress")),
		FlatNumber:      strings.TrimSpace(c.FormValue("flatNumber")),
		FloorNumber:     strings.TrimSpace(c.FormValue("floorNumber")),
		BuildingSociety: strings.TrimSpace(c.FormValue("buildingSociety")),
		Description:     strings.TrimSpace(c.FormValue("description")),
		BHK:             strings.TrimSpace(c.FormValue("bhk")),
		ListingType:     strings.ToLower(strings.TrimSpace(c.FormValue("listingType"))),
		OwnerName:       strings.TrimSpace(c.FormValue("ownerName")),
		OwnerPhone:      strings.TrimSpace(c.FormValue("ownerPhone")),
		CommissionTerms: strings.TrimSpace(c.FormValue("commissionTerms")),
		ScopeOfWork:     bulk.ParseScopeOfWork(strings.TrimSpace(c.FormValue("scopeOfWork"))),
	}

	switch strings.ToLower(strings.TrimSpace(c.FormValue("isPubliclyVisible"))) {
	case "true", "1", "yes", "y":
		v := true
		in.IsPubliclyVisible = &v
	case "false", "0", "no", "n":
		v := false
		in.IsPubliclyVisible = &v
	}

	return in
}

const maxPropertyImages = 8

func (pc *PropertyController) uploadImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) > maxPropertyImages {
		files = files[:maxPropertyImages]
	}

	var urls []string
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			continue
		}
		url, err := pc.images.Upload("property-"+uuid.NewString(), data)
		if err != nil {
			config.LogError(config.GetLogger(), "handlers", "uploadImages", "upload image", nil, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func isCoBroker(property models.Property, brokerID primitive.ObjectID) bool {
	for _, id := range property.CoBrokerIDs {
		if id == brokerID {
			return true
		}
	}
	return false
}

func filterPrice(properties []models.Property, minRaw, maxRaw string) []models.Property {
	if minRaw == "" && maxRaw == "" {
		return properties
	}
	min, minErr := strconv.ParseFloat(minRaw, 64)
	max, maxErr := strconv.ParseFloat(maxRaw, 64)

	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		price, err := parsePriceValue(p.Price)
		if err != nil {
			out = append(out, p)
			continue
		}
		if minErr == nil && price < min {
			continue
		}
		if maxErr == nil && price > max {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parsePriceValue pulls a comparable rupee amount out of a currency-formatted
// price string, applying the common Indian shorthand multipliers ("2.4 Cr",
// "75 Lakh", "25k"). Prices are stored as text, so range filtering is best
// effort.
func parsePriceValue(price string) (float64, error) {
	var digits strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0, err
	}

	lower := strings.ToLower(strings.TrimSpace(price))
	switch {
	case strings.Contains(lower, "cr"):
		value *= 1e7
	case strings.Contains(lower, "lakh"), strings.Contains(lower, "lac"), strings.HasSuffix(lower, "l"):
		value *= 1e5
	case strings.HasSuffix(lower, "k"):
		value *= 1e3
	}
	return value, nil
}
