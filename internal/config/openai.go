package config

import (
	"github.com/relatewell/genproxy/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// GetOpenAIKey returns the current OpenAI key
func GetOpenAIKey() string {
	value := GetEnvOrDefault("OPENAI_KEY", "")
	if value == "" {
		logger.Warn(logger.CONFIG, "OPENAI_KEY environment variable not set")
	}
	return value
}

func GetOpenAIModel() string {
	return GetEnvOrDefault("OPENAI_MODEL", openai.GPT4oMini)
}

// GetOpenAIBaseURL allows pointing at any OpenAI-compatible endpoint
func GetOpenAIBaseURL() string {
	return GetEnvOrDefault("OPENAI_BASE_URL", "")
}
