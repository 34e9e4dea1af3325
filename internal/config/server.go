package config

import (
	"time"
)

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:            GetEnvOrDefault("PORT", "8080"),
		ShutdownTimeout: parseEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}
