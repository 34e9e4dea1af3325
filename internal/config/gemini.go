package config

import (
	"github.com/relatewell/genproxy/pkg/logger"
)

// DefaultGeminiModel is used when neither the request nor GEMINI_MODEL names a model.
const DefaultGeminiModel = "gemini-2.0-flash"

// GetGeminiKey returns the API key used to authenticate to the Gemini API
func GetGeminiKey() string {
	value := GetEnvOrDefault("GEMINI_API_KEY", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "GEMINI_API_KEY environment variable not set")
	}
	return value
}

func GetGeminiModel() string {
	return GetEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel)
}

// GetGeminiBaseURL overrides the Gemini API endpoint, empty means the SDK default
func GetGeminiBaseURL() string {
	return GetEnvOrDefault("GEMINI_BASE_URL", "")
}
