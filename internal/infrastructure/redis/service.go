package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Service struct {
	client *redis.Client
}

// NewService connects to Redis at url. An empty url means Redis is not configured
// and yields a nil Service without error.
func NewService(ctx context.Context, url, password string) (*Service, error) {
	if url == "" {
		log.Info().Msg("Redis URL not configured - shared rate limiting unavailable")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error().
			Err(err).
			Str("addr", url).
			Msg("Failed to establish Redis connection")
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", url, err)
	}

	return &Service{
		client: client,
	}, nil
}

// Client exposes the underlying client for components that need pipelines
func (s *Service) Client() *redis.Client {
	return s.client
}

// Ping checks if Redis is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Service) Close() error {
	return s.client.Close()
}
