// Package generationtest provides test doubles for the generation package.
package generationtest

import (
	"context"

	"github.com/relatewell/genproxy/internal/services/generation"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a testify mock of generation.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, model, prompt string, cfg *generation.GenerationConfig) (string, error) {
	args := m.Called(ctx, model, prompt, cfg)
	return args.String(0), args.Error(1)
}
