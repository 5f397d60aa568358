// Package config loads application configuration from the environment.
// File: config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every knob the application reads from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	SessionSecret     string
	AdminEmail        string
	AdminPasswordHash string

	ApplicationURL string
	WebsocketURL   string

	AWSRegion   string
	EmailSender string

	FacebookPixelID     string
	FacebookAccessToken string

	GoogleServiceAccountJSON string
	GoogleCalendarID         string
}

// FromEnv reads configuration from the environment (a local .env file is
// loaded first when present) and validates the required fields.
func FromEnv() (Config, error) {
	// .env is a development convenience; absence is not an error
	_ = godotenv.Load()

	var c Config
	c.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	if c.Env == "" {
		c.Env = "development"
	}

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}

	c.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	c.SessionSecret = strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if c.SessionSecret == "" {
		c.SessionSecret = "change-me"
	}

	c.AdminEmail = strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	c.AdminPasswordHash = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH"))

	c.ApplicationURL = strings.TrimRight(strings.TrimSpace(os.Getenv("APPLICATION_URL")), "/")
	if c.ApplicationURL == "" {
		c.ApplicationURL = "http://localhost:8080" // Default to localhost for local testing
	}

	c.WebsocketURL = strings.TrimSpace(os.Getenv("WEBSOCKET_URL"))
	if c.WebsocketURL == "" {
		c.WebsocketURL = "ws://localhost:8080/admin/stats-feed"
	}

	c.AWSRegion = strings.TrimSpace(os.Getenv("AWS_REGION"))
	if c.AWSRegion == "" {
		c.AWSRegion = "eu-west-1"
	}
	c.EmailSender = strings.TrimSpace(os.Getenv("EMAIL_SENDER"))

	c.FacebookPixelID = strings.TrimSpace(os.Getenv("FB_PIXEL_ID"))
	c.FacebookAccessToken = strings.TrimSpace(os.Getenv("FB_ACCESS_TOKEN"))

	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	c.GoogleCalendarID = strings.TrimSpace(os.Getenv("GOOGLE_CALENDAR_ID"))

	if c.DatabaseURL == "" {
		return c, fmt.Errorf("DATABASE_URL is empty")
	}
	if c.AdminEmail == "" {
		return c, fmt.Errorf("ADMIN_EMAIL is empty")
	}
	if c.AdminPasswordHash == "" {
		return c, fmt.Errorf("ADMIN_PASSWORD_HASH is empty")
	}

	return c, nil
}

// IsProduction reports whether the app runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
