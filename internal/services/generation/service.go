package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/relatewell/genproxy/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Generator is a remote generative-content backend.
// Implementations must be safe for concurrent use and must abort the outbound
// call when ctx is cancelled.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, cfg *GenerationConfig) (string, error)
}

// Service defines the interface for generation operations
type Service interface {
	// Generate resolves the model, performs one upstream call and returns its text
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

type Implementation struct {
	generator    Generator
	defaultModel string
	metrics      *metrics.Metrics
}

// NewService wires a Generator behind the generation Service. metrics may be nil.
func NewService(generator Generator, defaultModel string, m *metrics.Metrics) (*Implementation, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if defaultModel == "" {
		return nil, fmt.Errorf("default model is required")
	}

	return &Implementation{
		generator:    generator,
		defaultModel: defaultModel,
		metrics:      m,
	}, nil
}

func (s *Implementation) DefaultModel() string {
	return s.defaultModel
}

func (s *Implementation) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	log.Ctx(ctx).Debug().
		Str("model", model).
		Int("message_length", len(req.Message)).
		Bool("has_config", req.Config != nil).
		Msg("Forwarding generation request upstream")

	start := time.Now()
	text, err := s.generator.Generate(ctx, model, req.Message, req.Config)
	s.metrics.ObserveUpstream(model, time.Since(start))
	if err != nil {
		s.metrics.ObserveUpstreamError(string(KindOf(err)))
		return "", fmt.Errorf("failed to generate content with %s: %w", model, err)
	}

	return text, nil
}
