// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Reference data (airlines, airport timezones)
	PostgresDSN string

	// Mailbox
	MailHost          string
	MailPort          string
	MailUsername      string
	MailPassword      string
	MailFolder        string
	MailAuth          string // "password" or "xoauth2"
	MailClientID      string
	MailClientSecret  string
	MailRefreshToken  string
	MailReconnectWait time.Duration

	// Pipeline
	SweepInterval       time.Duration
	ConfidenceThreshold int

	// Mailer service (outbound confirmations)
	MailerEndpoint string
	MailerToken    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "traveldesk"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		MailHost:          getEnv("MAIL_HOST", ""),
		MailPort:          getEnv("MAIL_PORT", "993"),
		MailUsername:      getEnv("MAIL_USERNAME", ""),
		MailPassword:      getEnv("MAIL_PASSWORD", ""),
		MailFolder:        getEnv("MAIL_FOLDER", "INBOX"),
		MailAuth:          getEnv("MAIL_AUTH", "password"),
		MailClientID:      getEnv("MAIL_CLIENT_ID", ""),
		MailClientSecret:  getEnv("MAIL_CLIENT_SECRET", ""),
		MailRefreshToken:  getEnv("MAIL_REFRESH_TOKEN", ""),
		MailReconnectWait: time.Duration(getEnvAsInt("MAIL_RECONNECT_WAIT", 15)) * time.Second,

		SweepInterval:       time.Duration(getEnvAsInt("SWEEP_INTERVAL", 30)) * time.Second,
		ConfidenceThreshold: getEnvAsInt("CONFIDENCE_THRESHOLD", 60),

		MailerEndpoint: getEnv("MAILER_ENDPOINT", ""),
		MailerToken:    getEnv("MAILER_TOKEN", ""),
	}

	return config, nil
}

// MailboxConfigured reports whether mailbox credentials are present.
// Mail monitoring is optional; the service runs without it.
func (c *Config) MailboxConfigured() bool {
	if c.MailHost == "" || c.MailUsername == "" {
		return false
	}
	if c.MailAuth == "xoauth2" {
		return c.MailClientID != "" && c.MailClientSecret != "" && c.MailRefreshToken != ""
	}
	return c.MailPassword != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
