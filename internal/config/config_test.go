package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("GENPROXY_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnvOrDefault("GENPROXY_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("GENPROXY_TEST_MISSING", "fallback"))
}

func TestGetRateLimitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RATELIMIT_ENABLED", "")
		t.Setenv("RATELIMIT_GENERATE", "")

		cfg := GetRateLimitConfig("generate")
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 60, cfg.MaxHits)
		assert.Equal(t, time.Minute, cfg.Window)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_ENABLED", "true")
		t.Setenv("RATELIMIT_GENERATE", "5")

		cfg := GetRateLimitConfig("generate")
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 5, cfg.MaxHits)
	})

	t.Run("invalid value falls back", func(t *testing.T) {
		t.Setenv("RATELIMIT_GLOBAL", "lots")
		assert.Equal(t, 1000, GetRateLimitConfig("global").MaxHits)
	})

	t.Run("unknown key is disabled", func(t *testing.T) {
		t.Setenv("RATELIMIT_ENABLED", "true")
		assert.False(t, GetRateLimitConfig("unknown").Enabled)
	})
}

func TestGetDefaultModel(t *testing.T) {
	t.Run("gemini default", func(t *testing.T) {
		t.Setenv("UPSTREAM_PROVIDER", "")
		t.Setenv("GEMINI_MODEL", "")
		assert.Equal(t, DefaultGeminiModel, GetDefaultModel())
	})

	t.Run("gemini override", func(t *testing.T) {
		t.Setenv("UPSTREAM_PROVIDER", "Gemini")
		t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
		assert.Equal(t, "gemini-2.5-pro", GetDefaultModel())
	})

	t.Run("openai provider", func(t *testing.T) {
		t.Setenv("UPSTREAM_PROVIDER", "openai")
		t.Setenv("OPENAI_MODEL", "gpt-4o")
		assert.Equal(t, "gpt-4o", GetDefaultModel())
	})
}

func TestGetServerConfig(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	cfg := GetServerConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestSetJWTSecret(t *testing.T) {
	restore := SetJWTSecret([]byte("secret"))
	assert.True(t, AuthEnabled())
	restore()

	restore = SetJWTSecret(nil)
	defer restore()
	assert.False(t, AuthEnabled())
}
