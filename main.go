package main

import (
	"BrokerConnect/config"
	"BrokerConnect/extract"
	"BrokerConnect/imghost"
	"BrokerConnect/routes"
	"BrokerConnect/sms"
	"BrokerConnect/utils"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	config.ConnectDB()

	utils.InitRedis()

	sender := sms.NewTwilioSender(settings.TwilioAccountSID, settings.TwilioAuthToken, settings.TwilioFromNumber)
	images := imghost.NewImgbbClient(settings.ImgbbAPIKey)
	extractor := extract.NewGeminiClient(settings.GeminiAPIKey)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.RegisterRoutes(e, settings, sender, images, extractor)

	log.Printf("Server starting on port %s", settings.Port)
	e.Logger.Fatal(e.Start(":" + settings.Port))
}
