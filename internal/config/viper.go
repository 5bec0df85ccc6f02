// Package config provides Viper-backed configuration helpers shared by
// the CLI and the recognition backends.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/fairwaylab/scorelens/pkg/errors"
)

// Environment variables that may carry the Gemini API key, checked in
// order. GOOGLE_API_KEY is the SDK's own convention.
var geminiKeyVars = []string{
	"GEMINI_API_KEY",
	"GOOGLE_API_KEY",
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GeminiAPIKey returns the configured Gemini API key, or empty when
// none is set.
func GeminiAPIKey() string {
	for _, key := range geminiKeyVars {
		if v := GetString(key); v != "" {
			return v
		}
	}
	return ""
}

// RequireGeminiAPIKey returns the configured Gemini API key or an
// authentication error naming the variables that were checked.
func RequireGeminiAPIKey() (string, error) {
	if key := GeminiAPIKey(); key != "" {
		return key, nil
	}
	return "", &errors.AuthenticationError{
		Backend: "gemini",
		Method:  "api_key",
		Message: "set GEMINI_API_KEY or GOOGLE_API_KEY",
	}
}
