package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	MigrationsPath  string
	SessionDuration time.Duration

	// InviteSecret encrypts invitation tokens; InviteTTL is the window an
	// invitation link stays valid.
	InviteSecret string
	InviteTTL    time.Duration

	// JWTSecret signs API bearer tokens
	JWTSecret   string
	JWTDuration time.Duration

	AppBaseURL   string
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	CarmaEndpoint string

	EmailDebug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first, if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:     getEnv("DB_URL", ""),
		DatabasePath:    getEnv("DB_PATH", "./transitdesk.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: getDuration("SESSION_DURATION", 24*time.Hour),
		InviteSecret:    getEnv("INVITE_SECRET", ""),
		InviteTTL:       getDuration("INVITE_TTL", 48*time.Hour),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTDuration:     getDuration("JWT_DURATION", time.Hour),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		AWSRegion:       getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", "TransitDesk"),
		CarmaEndpoint:   getEnv("CARMA_ENDPOINT", ""),
		EmailDebug:      getEnv("EMAIL_DEBUG", "") == "true",
	}
}

// Validate checks configuration the server cannot run without.
// A missing invite secret must fail at startup, never at token time.
func (c *Config) Validate() error {
	if c.InviteSecret == "" {
		return errors.New("INVITE_SECRET is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration environment variable or returns a default
func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
