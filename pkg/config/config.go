// Package config provides configuration management for the finance tracker
// client. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const defaultAPIBaseURL = "http://localhost:4010"

// Config represents the client configuration.
type Config struct {
	// APIBaseURL selects the API host. Absent, it defaults to the local
	// development address.
	APIBaseURL string

	// UseMocks substitutes the in-memory fixture repository for the real
	// backend.
	UseMocks bool

	// TokenPath overrides the default token file location.
	TokenPath string

	Debug bool
}

// Load loads configuration from environment variables. It automatically loads
// a .env file from the current directory if available; a custom .env path can
// be passed instead.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		APIBaseURL: getEnvOrDefault("FINTRACK_API_BASE_URL", defaultAPIBaseURL),
		UseMocks:   os.Getenv("FINTRACK_USE_MOCKS") == "true",
		TokenPath:  os.Getenv("FINTRACK_TOKEN_PATH"),
		Debug:      os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// getEnvOrDefault returns the value of the environment variable or a default
// value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
