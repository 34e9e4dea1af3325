package generation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/relatewell/genproxy/internal/metrics"
	"github.com/relatewell/genproxy/internal/services/generation"
	"github.com/relatewell/genproxy/internal/services/generation/generationtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const defaultModel = "gemini-2.0-flash"

func TestNewService(t *testing.T) {
	_, err := generation.NewService(nil, defaultModel, nil)
	assert.Error(t, err)

	_, err = generation.NewService(&generationtest.MockGenerator{}, "", nil)
	assert.Error(t, err)

	svc, err := generation.NewService(&generationtest.MockGenerator{}, defaultModel, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultModel, svc.DefaultModel())
}

func TestGenerate(t *testing.T) {
	temperature := float32(0.2)

	tests := []struct {
		name      string
		req       generation.GenerationRequest
		wantModel string
		upstream  string
		upErr     error
		wantText  string
		wantErr   bool
	}{
		{
			name:      "default model when omitted",
			req:       generation.GenerationRequest{Message: "Hello"},
			wantModel: defaultModel,
			upstream:  "Hi there!",
			wantText:  "Hi there!",
		},
		{
			name:      "explicit model overrides default",
			req:       generation.GenerationRequest{Message: "Hello", Model: "gemini-2.5-pro"},
			wantModel: "gemini-2.5-pro",
			upstream:  "Hi!",
			wantText:  "Hi!",
		},
		{
			name: "config passed through",
			req: generation.GenerationRequest{
				Message: "Hi",
				Config:  &generation.GenerationConfig{Temperature: &temperature},
			},
			wantModel: defaultModel,
			upstream:  "ok",
			wantText:  "ok",
		},
		{
			name:      "empty upstream text is a success",
			req:       generation.GenerationRequest{Message: "Hello"},
			wantModel: defaultModel,
			upstream:  "",
			wantText:  "",
		},
		{
			name:      "upstream failure is wrapped",
			req:       generation.GenerationRequest{Message: "Hello"},
			wantModel: defaultModel,
			upErr:     generation.NewUpstreamError(generation.KindQuota, "quota exceeded", nil),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &generationtest.MockGenerator{}
			gen.On("Generate", mock.Anything, tt.wantModel, tt.req.Message, tt.req.Config).
				Return(tt.upstream, tt.upErr).Once()

			svc, err := generation.NewService(gen, defaultModel, nil)
			require.NoError(t, err)

			text, err := svc.Generate(context.Background(), tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.upErr)
				assert.Equal(t, generation.KindQuota, generation.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, text)
			}
			gen.AssertExpectations(t)
		})
	}
}

func TestGenerateIsNotCached(t *testing.T) {
	gen := &generationtest.MockGenerator{}
	gen.On("Generate", mock.Anything, defaultModel, "Hello", (*generation.GenerationConfig)(nil)).
		Return("", generation.NewUpstreamError(generation.KindNetwork, "unavailable", nil)).Once()
	gen.On("Generate", mock.Anything, defaultModel, "Hello", (*generation.GenerationConfig)(nil)).
		Return("second", nil).Once()

	svc, err := generation.NewService(gen, defaultModel, nil)
	require.NoError(t, err)

	req := generation.GenerationRequest{Message: "Hello"}
	_, err = svc.Generate(context.Background(), req)
	assert.Error(t, err)

	text, err := svc.Generate(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "second", text)

	gen.AssertNumberOfCalls(t, "Generate", 2)
}

func TestGenerateRecordsMetrics(t *testing.T) {
	m := metrics.New()
	gen := &generationtest.MockGenerator{}
	gen.On("Generate", mock.Anything, defaultModel, "Hello", (*generation.GenerationConfig)(nil)).
		Return("", errors.New("boom")).Once()

	svc, err := generation.NewService(gen, defaultModel, m)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), generation.GenerationRequest{Message: "Hello"})
	require.Error(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "genproxy_upstream_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
