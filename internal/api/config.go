package api

import (
	"os"
	"strconv"
)

// Config holds all configuration for the REST client.
type Config struct {
	BaseURL   string
	TimeoutMs int
	LogCalls  bool
}

// DefaultConfig returns a Config with sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://localhost:8080/api",
		TimeoutMs: 10000,
		LogCalls:  false,
	}
}

// LoadConfig reads client configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("GATEPASS_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GATEPASS_API_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("GATEPASS_API_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
