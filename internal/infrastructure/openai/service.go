package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/relatewell/genproxy/internal/services/generation"
	"github.com/relatewell/genproxy/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// Service is a generation.Generator backed by an OpenAI-compatible chat completions API.
type Service struct {
	client *openai.Client
}

func NewService(key, baseURL string) (*Service, error) {
	logger.Info(logger.SERVICE, "Initialising OpenAI service")

	if key == "" {
		return nil, fmt.Errorf("openai service not configured - OPENAI_KEY missing")
	}

	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		logger.Info(logger.SERVICE, "Using custom OpenAI endpoint %s", baseURL)
		cfg.BaseURL = baseURL
	}

	return &Service{
		client: openai.NewClientWithConfig(cfg),
	}, nil
}

func (s *Service) Generate(ctx context.Context, model, prompt string, cfg *generation.GenerationConfig) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, BuildRequest(model, prompt, cfg))
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", generation.NewUpstreamError(generation.KindMalformedResponse, "upstream returned no choices", nil)
	}

	return resp.Choices[0].Message.Content, nil
}

// BuildRequest maps the prompt and tuning parameters onto a chat completion request.
// TopK has no OpenAI equivalent and is dropped.
func BuildRequest(model, prompt string, cfg *generation.GenerationConfig) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{Model: model}

	if cfg != nil && cfg.SystemInstruction != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: cfg.SystemInstruction,
		})
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	if cfg == nil {
		return req
	}

	if cfg.MaxOutputTokens != nil {
		req.MaxTokens = int(*cfg.MaxOutputTokens)
	}
	if cfg.Temperature != nil {
		req.Temperature = *cfg.Temperature
	}
	if cfg.TopP != nil {
		req.TopP = *cfg.TopP
	}
	if cfg.TopK != nil {
		logger.Debug(logger.UPSTREAM, "Dropping topK=%v, not supported by chat completions", *cfg.TopK)
	}
	if len(cfg.StopSequences) > 0 {
		req.Stop = append([]string(nil), cfg.StopSequences...)
	}

	return req
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return generation.NewUpstreamError(generation.KindForStatus(apiErr.HTTPStatusCode), apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		kind := generation.KindForStatus(reqErr.HTTPStatusCode)
		if kind == generation.KindUnknown && reqErr.HTTPStatusCode >= 200 && reqErr.HTTPStatusCode < 300 {
			kind = generation.KindMalformedResponse
		}
		return generation.NewUpstreamError(kind, "", err)
	}

	return generation.FromTransportError(err)
}
