package config

import (
	"sync"
)

var (
	jwtSecretMu sync.RWMutex
	// JWTSecret signs bearer tokens accepted by the generate endpoint.
	// Empty disables bearer authentication.
	JWTSecret = []byte(GetEnvOrDefault("JWT_SECRET", ""))
)

// SetJWTSecret temporarily changes the JWT secret and returns a function to restore it
// This is primarily used for testing
func SetJWTSecret(secret []byte) func() {
	jwtSecretMu.Lock()
	previous := JWTSecret
	JWTSecret = secret
	jwtSecretMu.Unlock()

	return func() {
		jwtSecretMu.Lock()
		JWTSecret = previous
		jwtSecretMu.Unlock()
	}
}

// GetJWTSecret returns the current JWT secret in a thread-safe manner
func GetJWTSecret() []byte {
	jwtSecretMu.RLock()
	defer jwtSecretMu.RUnlock()
	return JWTSecret
}

// AuthEnabled reports whether bearer tokens are required
func AuthEnabled() bool {
	return len(GetJWTSecret()) > 0
}
