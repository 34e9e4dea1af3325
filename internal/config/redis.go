package config

import (
	"github.com/relatewell/genproxy/pkg/logger"
)

// GetRedisURL returns the Redis address backing the shared rate limiter
func GetRedisURL() string {
	logger.Debug(logger.CONFIG, "Attempting to retrieve Redis URL from environment")
	value := GetEnvOrDefault("REDIS_URL", "")
	if value == "" {
		logger.Info(logger.CONFIG, "REDIS_URL not set - rate limits are tracked in memory")
	} else {
		logger.Info(logger.CONFIG, "Redis URL successfully loaded")
	}
	return value
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
