package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/relatewell/genproxy/internal/config"
	"github.com/relatewell/genproxy/internal/infrastructure/gemini"
	"github.com/relatewell/genproxy/internal/infrastructure/openai"
	"github.com/relatewell/genproxy/internal/infrastructure/redis"
	"github.com/relatewell/genproxy/internal/metrics"
	"github.com/relatewell/genproxy/internal/services/generation"
)

type Services struct {
	provider          string
	generationService *generation.Implementation
	redisService      *redis.Service
	metrics           *metrics.Metrics
}

// InitializeServices initializes all required services. A missing upstream
// credential is an error so the process fails at startup rather than on the first request.
func InitializeServices(ctx context.Context) (*Services, error) {
	log.Info().Msg("Initializing core services")

	provider := config.GetUpstreamProvider()
	generator, err := newGenerator(ctx, provider)
	if err != nil {
		log.Error().Err(err).Str("provider", provider).Msg("Failed to initialize upstream generator - required for core functionality")
		return nil, err
	}
	log.Info().Str("provider", provider).Msg("Initializing upstream generator")

	// Redis only backs the shared rate limiter and is optional
	redisService, err := redis.NewService(ctx, config.GetRedisURL(), config.GetRedisPassword())
	if err != nil {
		log.Warn().Err(err).Msg("Continuing without Redis - rate limits are tracked in memory")
	}

	services, err := New(provider, generator, config.GetDefaultModel(), redisService, metrics.New())
	if err != nil {
		return nil, err
	}

	log.Info().Msg("All services initialized successfully")
	return services, nil
}

// New assembles Services from already constructed dependencies. redisService may be nil.
func New(provider string, generator generation.Generator, defaultModel string, redisService *redis.Service, m *metrics.Metrics) (*Services, error) {
	generationService, err := generation.NewService(generator, defaultModel, m)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize generation service")
		return nil, fmt.Errorf("failed to initialize generation service: %w", err)
	}

	return &Services{
		provider:          provider,
		generationService: generationService,
		redisService:      redisService,
		metrics:           m,
	}, nil
}

func newGenerator(ctx context.Context, provider string) (generation.Generator, error) {
	switch provider {
	case config.ProviderGemini:
		return gemini.NewService(ctx, config.GetGeminiKey(), config.GetGeminiBaseURL())
	case config.ProviderOpenAI:
		return openai.NewService(config.GetOpenAIKey(), config.GetOpenAIBaseURL())
	default:
		return nil, fmt.Errorf("unknown upstream provider %q", provider)
	}
}

// GetGenerationService returns the generation service
func (s *Services) GetGenerationService() *generation.Implementation {
	return s.generationService
}

// GetRedisService returns the Redis service, nil when Redis is not configured
func (s *Services) GetRedisService() *redis.Service {
	return s.redisService
}

func (s *Services) GetMetrics() *metrics.Metrics {
	return s.metrics
}

func (s *Services) GetProvider() string {
	return s.provider
}

// Close releases connections held by the services
func (s *Services) Close() error {
	if s.redisService != nil {
		return s.redisService.Close()
	}
	return nil
}
