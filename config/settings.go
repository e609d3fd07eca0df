package config

import (
	"fmt"
	"os"
	"strconv"
)

// Settings holds every external credential and tunable read at startup.
// Missing required values fail the process before it serves a single request.
type Settings struct {
	Port string

	AppBaseURL string

	JWTSecret      string
	JWTExpiryHours int

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	ImgbbAPIKey string

	GeminiAPIKey string

	OTPBypassCode string
}

func LoadSettings() (*Settings, error) {
	s := &Settings{
		Port:             os.Getenv("PORT"),
		AppBaseURL:       os.Getenv("APP_BASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		ImgbbAPIKey:      os.Getenv("IMGBB_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OTPBypassCode:    os.Getenv("OTP_BYPASS_CODE"),
	}

	if s.Port == "" {
		s.Port = "8080"
	}
	if s.AppBaseURL == "" {
		s.AppBaseURL = "http://localhost:" + s.Port
	}

	if s.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	if s.TwilioAccountSID == "" || s.TwilioAuthToken == "" || s.TwilioFromNumber == "" {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER must be set")
	}

	s.JWTExpiryHours = 24
	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("JWT_EXPIRY_HOURS must be an integer: %w", err)
		}
		s.JWTExpiryHours = hours
	}

	return s, nil
}
