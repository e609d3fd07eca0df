package routes

import (
	"BrokerConnect/config"
	"BrokerConnect/extract"
	"BrokerConnect/handlers"
	"BrokerConnect/middleware"
	"BrokerConnect/sms"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, settings *config.Settings, sender sms.Sender, images handlers.ImageUploader, extractor extract.Extractor) {
	brokerController := handlers.NewBrokerController(settings, sender, images)
	propertyController := handlers.NewPropertyController(settings, sender, images)
	bulkController := handlers.NewBulkController(propertyController)
	consentController := handlers.NewConsentController()
	colistingController := handlers.NewColistingController()
	savedController := handlers.NewSavedController()
	messageController := handlers.NewMessageController()
	extractController := handlers.NewExtractController(extractor)

	e.GET("/health", handlers.HealthCheck)

	e.POST("/auth/otp/request", brokerController.RequestOTP)
	e.POST("/auth/otp/verify", brokerController.VerifyOTP)
	e.POST("/auth/admin/login", brokerController.AdminLogin)

	e.GET("/consent/:token", consentController.GetConsent)
	e.POST("/consent/:token/approve", consentController.ApproveConsent)
	e.POST("/consent/:token/reject", consentController.RejectConsent)

	auth := e.Group("", middleware.JWTMiddleware(settings))

	auth.GET("/profile", brokerController.GetProfile)
	auth.PUT("/profile", brokerController.UpdateProfile)
	auth.GET("/brokers/:id", brokerController.GetBrokerPublic)

	auth.GET("/feed", propertyController.Feed)
	auth.POST("/my-properties", propertyController.CreateProperty)
	auth.GET("/my-properties", propertyController.MyProperties)
	auth.GET("/my-properties/:id", propertyController.GetProperty)
	auth.PUT("/my-properties/:id", propertyController.UpdateProperty)
	auth.DELETE("/my-properties/:id", propertyController.DeleteProperty)

	auth.POST("/properties/bulk-upload", bulkController.BulkUpload)
	auth.GET("/properties/bulk-template", bulkController.BulkTemplate)
	auth.POST("/properties/extract", extractController.ExtractListing)

	auth.POST("/colistings", colistingController.RequestColisting)
	auth.GET("/colistings", colistingController.ListColistings)
	auth.POST("/colistings/:id/respond", colistingController.RespondColisting)

	auth.POST("/saved", savedController.SaveListing)
	auth.GET("/saved", savedController.GetSavedListings)
	auth.DELETE("/saved/:propertyId", savedController.DeleteSavedListing)

	auth.POST("/messages", messageController.SendMessage)
	auth.GET("/messages/conversations", messageController.ListConversations)
	auth.GET("/messages/:brokerId", messageController.GetConversation)

	admin := auth.Group("/admin", middleware.AdminOnly())
	admin.GET("/brokers", brokerController.GetAllBrokers)
	admin.POST("/properties/:id/approve", propertyController.ApproveProperty)
	admin.POST("/properties/:id/reject", propertyController.RejectProperty)
}
