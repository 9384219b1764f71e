package domain

import "context"

type generationUsageKey struct{}

// GenerationUsage collects provider token usage for a single request.
// The boundary puts a mutable pointer into the context before calling the
// search service; the service records after a successful generation.
type GenerationUsage struct {
	PromptTokens int
	OutputTokens int
	Used         bool // true once the provider answered, even with zero reported tokens
}

// NewContextWithUsage returns a context with a usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *GenerationUsage) {
	u := &GenerationUsage{}
	return context.WithValue(ctx, generationUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *GenerationUsage {
	u, _ := ctx.Value(generationUsageKey{}).(*GenerationUsage)
	return u
}

// Record adds the tokens of one provider answer. Safe on a nil receiver.
func (u *GenerationUsage) Record(r GenerationResult) {
	if u != nil {
		u.PromptTokens += r.PromptTokens
		u.OutputTokens += r.OutputTokens
		u.Used = true
	}
}

// TotalTokens returns prompt plus output tokens.
func (u *GenerationUsage) TotalTokens() int {
	if u == nil {
		return 0
	}
	return u.PromptTokens + u.OutputTokens
}
