package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/relatewell/genproxy/internal/services/generation"
	"github.com/relatewell/genproxy/pkg/logger"
	"google.golang.org/genai"
)

// Service is a generation.Generator backed by the Gemini API. The underlying
// client is built once and is safe for concurrent use.
type Service struct {
	client *genai.Client
}

func NewService(ctx context.Context, apiKey, baseURL string) (*Service, error) {
	logger.Info(logger.SERVICE, "Initialising Gemini service")

	if apiKey == "" {
		return nil, fmt.Errorf("gemini service not configured - GEMINI_API_KEY missing")
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		logger.Info(logger.SERVICE, "Using custom Gemini endpoint %s", baseURL)
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Service{client: client}, nil
}

func (s *Service) Generate(ctx context.Context, model, prompt string, cfg *generation.GenerationConfig) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(prompt), BuildConfig(cfg))
	if err != nil {
		return "", classify(err)
	}

	return responseText(resp)
}

// BuildConfig projects the request config onto the SDK config. A nil config
// yields nil so that no generation config is sent at all.
func BuildConfig(cfg *generation.GenerationConfig) *genai.GenerateContentConfig {
	if cfg == nil {
		return nil
	}

	out := &genai.GenerateContentConfig{
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
	}
	if cfg.MaxOutputTokens != nil {
		out.MaxOutputTokens = *cfg.MaxOutputTokens
	}
	if len(cfg.StopSequences) > 0 {
		out.StopSequences = append([]string(nil), cfg.StopSequences...)
	}
	if cfg.SystemInstruction != "" {
		out.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemInstruction}},
		}
	}

	return out
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", generation.NewUpstreamError(generation.KindMalformedResponse, "empty response from upstream", nil)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", generation.NewUpstreamError(generation.KindUnknown,
				fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason), nil)
		}
		return "", generation.NewUpstreamError(generation.KindMalformedResponse, "upstream returned no candidates", nil)
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}

	return sb.String(), nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fromAPIError(apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return fromAPIError(*apiErrPtr, err)
	}

	return generation.FromTransportError(err)
}

func fromAPIError(apiErr genai.APIError, err error) error {
	message := apiErr.Message
	if message == "" {
		message = apiErr.Status
	}
	return generation.NewUpstreamError(generation.KindForStatus(apiErr.Code), message, err)
}
