package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/domain/response"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
	"github.com/kailas-cloud/scenttwin/internal/metrics"
)

// Service runs one perfume search: build the prompt, call the provider, validate the answer.
type Service struct {
	builder *prompt.Builder
	gen     Generator
}

// New creates a search service. gen may be nil when no provider credential
// is configured; every search then fails with domain.ErrNotConfigured.
func New(builder *prompt.Builder, gen Generator) *Service {
	return &Service{builder: builder, gen: gen}
}

// Configured reports whether a provider is available.
func (s *Service) Configured() bool { return s.gen != nil }

// Builder returns the prompt builder used by the service.
func (s *Service) Builder() *prompt.Builder { return s.builder }

// Search executes a classified request against the provider.
func (s *Service) Search(ctx context.Context, req request.Request) (response.Result, error) {
	m := req.Mode()

	if s.gen == nil {
		recordOutcome(m.String(), metrics.OutcomeNotConfigured)
		return response.Result{}, domain.ErrNotConfigured
	}

	p := s.builder.Build(req)

	gen, err := s.gen.Generate(ctx, p)
	if err != nil {
		recordOutcome(m.String(), metrics.OutcomeProviderFailure)
		if errors.Is(err, domain.ErrProviderFailure) {
			return response.Result{}, fmt.Errorf("generate: %w", err)
		}
		return response.Result{}, fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
	}

	domain.UsageFromContext(ctx).Record(gen)

	res, err := response.Validate(m, p.Schema, gen.Text)
	if err != nil {
		recordOutcome(m.String(), metrics.OutcomeContractViolated)
		return response.Result{}, fmt.Errorf("validate response: %w", err)
	}

	recordOutcome(m.String(), metrics.OutcomeOK)
	return res, nil
}

func recordOutcome(m, outcome string) {
	metrics.SearchOutcomesTotal.WithLabelValues(m, outcome).Inc()
}
