// Package app is the composition root shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/config"
	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/metrics"
	geminiGen "github.com/kailas-cloud/scenttwin/internal/transport/gemini"
	openaiGen "github.com/kailas-cloud/scenttwin/internal/transport/openai"
	generationuc "github.com/kailas-cloud/scenttwin/internal/usecase/generation"
	healthuc "github.com/kailas-cloud/scenttwin/internal/usecase/health"
	searchuc "github.com/kailas-cloud/scenttwin/internal/usecase/search"
)

// App holds the wired services.
type App struct {
	Search *searchuc.Service
	Health *healthuc.Service
	// Provider and Model describe the configured generator; Model is empty without a credential.
	Provider string
	Model    string
}

// provider is what a transport offers: generation plus a cheap availability probe.
type provider interface {
	searchuc.Generator
	healthuc.ProviderChecker
	Model() string
}

// New wires services from cfg. A missing provider credential is not an
// error: searches then fail with a configuration error and /health degrades.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	metrics.RegisterGenerationMetrics()

	builder, err := prompt.NewBuilder(prompt.Limits{
		SimilarPerfumes:  cfg.Limits.SimilarPerfumes,
		NotesSuggestions: cfg.Limits.NotesSuggestions,
	}, prompt.Language(cfg.Prompt.Language))
	if err != nil {
		return nil, fmt.Errorf("prompt builder: %w", err)
	}

	a := &App{Provider: cfg.Provider.Driver}

	p, err := buildProvider(ctx, cfg.Provider, logger)
	if err != nil {
		return nil, err
	}

	// Pass nil interface (not typed nil pointer!) when the provider is not configured.
	var gen searchuc.Generator
	var checker healthuc.ProviderChecker
	if p != nil {
		a.Model = p.Model()
		gen = generationuc.NewInstrumentedGenerator(
			p, cfg.Provider.Driver, p.Model(),
			time.Duration(cfg.Provider.TimeoutSec)*time.Second, logger,
		)
		checker = p
	} else {
		logger.Warn("Provider API key is not set; searches will fail with a configuration error",
			zap.String("driver", cfg.Provider.Driver),
		)
	}

	a.Search = searchuc.New(builder, gen)
	a.Health = healthuc.New(checker, cfg.Provider.HealthProbe)
	return a, nil
}

// buildProvider returns nil without error when no API key is configured.
func buildProvider(ctx context.Context, pc config.ProviderConfig, logger *zap.Logger) (provider, error) {
	if pc.APIKey == "" {
		return nil, nil
	}

	switch pc.Driver {
	case config.DriverGemini:
		g, err := geminiGen.NewGenerator(ctx, &geminiGen.Config{
			APIKey:         pc.APIKey,
			BaseURL:        pc.BaseURL,
			Model:          pc.Model,
			ThinkingBudget: pc.ThinkingBudget,
			Logger:         logger,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini generator: %w", err)
		}
		return g, nil
	case config.DriverOpenAI:
		g, err := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:   pc.APIKey,
			BaseURL:  pc.BaseURL,
			Model:    pc.Model,
			Provider: pc.Driver,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("openai generator: %w", err)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown provider driver %q", pc.Driver)
	}
}
