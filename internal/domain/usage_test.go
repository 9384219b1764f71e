package domain

import (
	"context"
	"testing"
)

func TestUsageFromContext_Missing(t *testing.T) {
	u := UsageFromContext(context.Background())
	if u != nil {
		t.Fatal("expected nil usage")
	}
	// nil receiver is a no-op
	u.Record(GenerationResult{PromptTokens: 5})
	if u.TotalTokens() != 0 {
		t.Error("expected zero tokens on nil usage")
	}
}

func TestUsage_Record(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())

	UsageFromContext(ctx).Record(GenerationResult{PromptTokens: 120, OutputTokens: 380})

	if !u.Used {
		t.Error("expected Used after Record")
	}
	if u.PromptTokens != 120 || u.OutputTokens != 380 {
		t.Errorf("usage = %+v", u)
	}
	if u.TotalTokens() != 500 {
		t.Errorf("TotalTokens = %d, want 500", u.TotalTokens())
	}
}

func TestUsage_RecordZeroTokens(t *testing.T) {
	_, u := NewContextWithUsage(context.Background())
	u.Record(GenerationResult{})
	if !u.Used {
		t.Error("a provider answer without token counts still marks usage")
	}
}
