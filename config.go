package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration, sourced from an optional .env file
// and environment variables.
type Config struct {
	DataDir       string
	LogLevel      string
	HashPasswords bool
}

func loadConfig() Config {
	// Missing .env is fine; system environment still applies.
	_ = godotenv.Load()

	return Config{
		DataDir:       getEnv("LIBRARY_DATA_DIR", "."),
		LogLevel:      getEnv("LIBRARY_LOG_LEVEL", "info"),
		HashPasswords: getEnv("LIBRARY_HASH_PASSWORDS", "") == "1",
	}
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
