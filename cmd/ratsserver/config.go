package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the non-contractual knobs read from the environment.
// The connection ceiling, greeting and port come from argv.
type Config struct {
	// LogLevel selects the logger verbosity (debug, info, warn, error).
	LogLevel string
	// DebugAddr, when set, serves live runtime metrics on that address.
	DebugAddr string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() Config {
	// Load .env file if it exists
	godotenv.Load()

	return Config{
		LogLevel:  getEnv("RATS_LOG_LEVEL", "info"),
		DebugAddr: getEnv("RATS_DEBUG_ADDR", ""),
	}
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
