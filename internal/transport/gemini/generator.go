// Package gemini implements the generator contract on the Gemini API with a
// native response schema.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/metrics"
)

// ProviderName labels metrics and logs for this transport.
const ProviderName = "gemini"

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the Gemini settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// ThinkingBudget caps reasoning tokens. nil leaves the model default; 0 disables thinking.
	ThinkingBudget *int32
	Logger         *zap.Logger
}

// Generator calls models.generateContent with JSON output constrained by a schema.
type Generator struct {
	client   *genai.Client
	model    string
	thinking *int32
	logger   *zap.Logger
}

// NewGenerator creates a Gemini generator.
// Returns domain.ErrNotConfigured when the API key is empty.
func NewGenerator(ctx context.Context, cfg *Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key: %w", domain.ErrNotConfigured)
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{client: client, model: model, thinking: cfg.ThinkingBudget, logger: log}, nil
}

// Generate sends the instruction and returns the model's JSON text.
func (g *Generator) Generate(ctx context.Context, p prompt.Prompt) (domain.GenerationResult, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toSchema(&p.Schema),
	}
	if g.thinking != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: g.thinking}
	}

	start := time.Now()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.Instruction), config)

	duration := time.Since(start)

	if err != nil {
		g.recordError(errorType(ctx, err))
		return domain.GenerationResult{}, parseAPIError(err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		g.recordError("blocked")
		return domain.GenerationResult{}, fmt.Errorf("prompt blocked (%s): %w",
			resp.PromptFeedback.BlockReason, domain.ErrProviderFailure)
	}
	if len(resp.Candidates) == 0 {
		g.recordError("empty_response")
		return domain.GenerationResult{}, fmt.Errorf("no candidates in response: %w", domain.ErrProviderFailure)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(ProviderName, g.model, "success").Inc()
	metrics.GenerationRequestDuration.WithLabelValues(ProviderName, g.model).Observe(duration.Seconds())

	var promptTokens, outputTokens int
	if u := resp.UsageMetadata; u != nil {
		promptTokens = int(u.PromptTokenCount)
		outputTokens = int(u.CandidatesTokenCount)
		metrics.GenerationTokensTotal.WithLabelValues(ProviderName, g.model, "prompt").Add(float64(promptTokens))
		metrics.GenerationTokensTotal.WithLabelValues(ProviderName, g.model, "output").Add(float64(outputTokens))
	}

	if fr := resp.Candidates[0].FinishReason; fr != "" && fr != genai.FinishReasonStop {
		g.logger.Warn("Generation finished early",
			zap.String("model", g.model),
			zap.String("mode", p.Mode.String()),
			zap.String("finish_reason", string(fr)),
		)
	}

	return domain.GenerationResult{
		Text:         resp.Text(),
		PromptTokens: promptTokens,
		OutputTokens: outputTokens,
	}, nil
}

// HealthCheck verifies the configured model is reachable (metadata call, no tokens billed).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.Models.Get(ctx, g.model, nil); err != nil {
		return fmt.Errorf("get model %s: %w", g.model, err)
	}
	return nil
}

// Model returns the configured model name.
func (g *Generator) Model() string { return g.model }

func (g *Generator) recordError(kind string) {
	metrics.GenerationRequestsTotal.WithLabelValues(ProviderName, g.model, "error").Inc()
	metrics.GenerationErrorsTotal.WithLabelValues(ProviderName, g.model, kind).Inc()
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

// parseAPIError keeps the status and message of a Gemini error.
// All errors are wrapped with domain.ErrProviderFailure.
func parseAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini API error %d %s: %s: %w",
			apiErr.Code, apiErr.Status, apiErr.Message, domain.ErrProviderFailure)
	}
	return fmt.Errorf("gemini request failed: %w: %w", domain.ErrProviderFailure, err)
}
