package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	APIBaseURL     string
	TelegramToken  string
	LogLevel       string
	MetricsPort    string
	SessionFile    string
	SearchDebounce time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		MetricsPort:    getEnvOrDefault("METRICS_PORT", "9090"),
		SessionFile:    getEnvOrDefault("SESSION_FILE", "trolley-session.json"),
		SearchDebounce: 500 * time.Millisecond,
	}

	if raw := os.Getenv("SEARCH_DEBOUNCE_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("SEARCH_DEBOUNCE_MS must be a non-negative integer, got %q", raw)
		}
		cfg.SearchDebounce = time.Duration(ms) * time.Millisecond
	}

	// Required environment variables
	if cfg.APIBaseURL = os.Getenv("API_BASE_URL"); cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL environment variable is required")
	}

	if cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN"); cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
