package domain

// GenerationResult holds the raw provider text and its token usage.
type GenerationResult struct {
	Text         string
	PromptTokens int
	OutputTokens int
}
