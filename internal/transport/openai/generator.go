package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/metrics"
)

// ProviderName labels metrics and logs for this transport.
const ProviderName = "openai"

// Generator is a chat-completions provider using the OpenAI-compatible API
// with structured output (response_format json_schema).
type Generator struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Logger   *zap.Logger
}

// NewGenerator creates an OpenAI-compatible generator.
// Returns domain.ErrNotConfigured when the API key is empty.
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key: %w", domain.ErrNotConfigured)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderName
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: provider,
		logger:   log,
	}, nil
}

// Generate sends the instruction with a strict JSON schema and returns the
// message content with transport-level metrics.
func (g *Generator) Generate(ctx context.Context, p prompt.Prompt) (domain.GenerationResult, error) {
	format := responseFormat(p)
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: p.Instruction},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type:       openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: format.spec,
		},
		User: g.user,
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		g.recordError(errorType(ctx, err))
		return domain.GenerationResult{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		g.recordError("empty_response")
		return domain.GenerationResult{}, fmt.Errorf("no choices in completion: %w", domain.ErrProviderFailure)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(g.provider, g.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.GenerationTokensTotal.WithLabelValues(g.provider, g.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(g.provider, g.model, "output").Add(float64(resp.Usage.CompletionTokens))
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonLength {
		g.logger.Warn("Completion truncated by token limit",
			zap.String("model", g.model),
			zap.String("mode", p.Mode.String()),
		)
	}

	return domain.GenerationResult{
		Text:         format.unwrap(choice.Message.Content),
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// Model returns the configured model name.
func (g *Generator) Model() string { return g.model }

func (g *Generator) recordError(kind string) {
	metrics.GenerationRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
	metrics.GenerationErrorsTotal.WithLabelValues(g.provider, g.model, kind).Inc()
}

func errorType(ctx context.Context, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "api_error"
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrProviderFailure.
func parseAPIError(err error) error {
	wrap := domain.ErrProviderFailure

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("completion request failed: %w: %w", wrap, err)
}

// extractDetail extracts the "detail" field from a JSON error body (Nebius error format).
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
