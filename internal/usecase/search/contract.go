package search

import (
	"context"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
)

// Generator sends a prompt to the language model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, p prompt.Prompt) (domain.GenerationResult, error)
}
