package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/logger"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 30 * time.Second

// Generator is the provider contract being decorated.
type Generator interface {
	Generate(ctx context.Context, p prompt.Prompt) (domain.GenerationResult, error)
}

// InstrumentedGenerator wraps a Generator with a per-call timeout and logging.
// Transport metrics (requests, duration, tokens) are recorded in the transports.
// Every error leaving this layer wraps domain.ErrProviderFailure.
type InstrumentedGenerator struct {
	inner    Generator
	provider string
	model    string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewInstrumentedGenerator wraps a generator. A non-positive timeout means DefaultTimeout.
func NewInstrumentedGenerator(
	inner Generator, provider, model string,
	timeout time.Duration, logger *zap.Logger,
) *InstrumentedGenerator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &InstrumentedGenerator{
		inner:    inner,
		provider: provider,
		model:    model,
		timeout:  timeout,
		logger:   logger,
	}
}

// Generate calls the inner generator under the timeout.
func (g *InstrumentedGenerator) Generate(
	ctx context.Context, p prompt.Prompt,
) (domain.GenerationResult, error) {
	log := g.requestLogger(ctx)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	result, err := g.inner.Generate(callCtx, p)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("provider call exceeded %s: %w", g.timeout, err)
		}
		log.Error("Generation request failed",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.String("mode", p.Mode.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		if errors.Is(err, domain.ErrProviderFailure) {
			return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
		}
		return domain.GenerationResult{}, fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
	}

	log.Debug("Generation request completed",
		zap.String("provider", g.provider),
		zap.String("model", g.model),
		zap.String("mode", p.Mode.String()),
		zap.Duration("duration", duration),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("output_tokens", result.OutputTokens),
		zap.Int("response_bytes", len(result.Text)),
	)

	return result, nil
}

// requestLogger prefers the request-scoped logger so lines carry request_id.
func (g *InstrumentedGenerator) requestLogger(ctx context.Context) *zap.Logger {
	return logger.OrDefault(ctx, g.logger)
}
