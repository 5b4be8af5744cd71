package util

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"kg/pkg/logger"
)

// LoadEnv loads a .env file from the working directory if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
}

// GetEnvString returns the value of key, or defaultValue if unset.
func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	return value
}

// GetEnvInt returns the value of key parsed as an integer, or defaultValue
// if unset or unparseable.
func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

// GetEnvBool returns the value of key as a bool. Only the literal strings
// "true" and "false" are recognized; anything else yields defaultValue.
func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	if value == "true" || value == "false" {
		return value == "true"
	}

	return defaultValue
}
