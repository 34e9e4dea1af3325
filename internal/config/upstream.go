package config

import (
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// GetUpstreamProvider selects the generative backend, gemini unless UPSTREAM_PROVIDER says otherwise
func GetUpstreamProvider() string {
	return strings.ToLower(GetEnvOrDefault("UPSTREAM_PROVIDER", ProviderGemini))
}

// GetDefaultModel returns the model used when a request does not name one
func GetDefaultModel() string {
	if GetUpstreamProvider() == ProviderOpenAI {
		return GetOpenAIModel()
	}
	return GetGeminiModel()
}
