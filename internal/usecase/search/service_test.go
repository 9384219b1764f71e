package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
	"github.com/kailas-cloud/scenttwin/internal/metrics"
)

// --- Mocks ---

type mockGenerator struct {
	text   string
	err    error
	called int
	last   prompt.Prompt
}

func (m *mockGenerator) Generate(_ context.Context, p prompt.Prompt) (domain.GenerationResult, error) {
	m.called++
	m.last = p
	if m.err != nil {
		return domain.GenerationResult{}, m.err
	}
	return domain.GenerationResult{Text: m.text}, nil
}

const sauvageJSON = `{"originalPerfume":{"name":"Sauvage","brand":"Dior","description":"Fresh.",
"notes":{"top":["Bergamot"],"middle":["Lavender"],"base":["Ambroxan"]}},
"similarPerfumes":[{"name":"Club de Nuit Sillage","brand":"Armaf","origin":"Árabe","similarityReason":"Ambroxan."}]}`

func newBuilder(t *testing.T) *prompt.Builder {
	t.Helper()
	b, err := prompt.NewBuilder(prompt.DefaultLimits(), prompt.PortugueseBR)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return b
}

func mustRequest(t *testing.T, q string, m mode.Mode) request.Request {
	t.Helper()
	req, err := request.New(q, m)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}

// --- Tests ---

func TestSearch_ByName(t *testing.T) {
	gen := &mockGenerator{text: sauvageJSON}
	svc := New(newBuilder(t), gen)

	res, err := svc.Search(context.Background(), mustRequest(t, "Dior Sauvage", mode.ByName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.called != 1 {
		t.Errorf("expected 1 provider call, got %d", gen.called)
	}
	if gen.last.Mode != mode.ByName || gen.last.SchemaName != prompt.DetailsSchemaName {
		t.Errorf("unexpected prompt: mode=%s schema=%s", gen.last.Mode, gen.last.SchemaName)
	}
	if !strings.Contains(gen.last.Instruction, `"Dior Sauvage"`) {
		t.Errorf("instruction does not carry the query: %q", gen.last.Instruction)
	}
	if res.Details == nil || res.Details.OriginalPerfume.Brand != "Dior" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestSearch_ByNotes(t *testing.T) {
	gen := &mockGenerator{text: `[{"name":"A","brand":"B","description":"C"}]`}
	svc := New(newBuilder(t), gen)

	res, err := svc.Search(context.Background(), mustRequest(t, "baunilha e âmbar", mode.ByNotes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Notes) != 1 || res.Notes[0].Name != "A" {
		t.Errorf("unexpected notes: %+v", res.Notes)
	}
	if gen.last.SchemaName != prompt.NotesSchemaName {
		t.Errorf("schema name = %s", gen.last.SchemaName)
	}
}

func TestSearch_NotConfigured(t *testing.T) {
	svc := New(newBuilder(t), nil)
	if svc.Configured() {
		t.Fatal("expected service without generator to be unconfigured")
	}

	before := testutil.ToFloat64(metrics.SearchOutcomesTotal.WithLabelValues("BY_NAME", metrics.OutcomeNotConfigured))
	_, err := svc.Search(context.Background(), mustRequest(t, "Sauvage", mode.ByName))
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	after := testutil.ToFloat64(metrics.SearchOutcomesTotal.WithLabelValues("BY_NAME", metrics.OutcomeNotConfigured))
	if after-before != 1 {
		t.Errorf("outcome counter delta = %f, want 1", after-before)
	}
}

func TestSearch_ProviderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"plain error", errors.New("connection reset")},
		{"already classified", domain.ErrProviderFailure},
		{"deadline", context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(newBuilder(t), &mockGenerator{err: tt.err})
			_, err := svc.Search(context.Background(), mustRequest(t, "Sauvage", mode.ByName))
			if !errors.Is(err, domain.ErrProviderFailure) {
				t.Fatalf("expected ErrProviderFailure, got %v", err)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("original cause lost: %v", err)
			}
		})
	}
}

func TestSearch_ContractViolation(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind domain.ValidationKind
	}{
		{"empty", "   ", domain.EmptyResponse},
		{"prose", "Claro! Aqui estão...", domain.MalformedJSON},
		{"missing base", `{"originalPerfume":{"name":"X","brand":"Y","description":"Z",
			"notes":{"top":[],"middle":[]}},"similarPerfumes":[]}`, domain.SchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(newBuilder(t), &mockGenerator{text: tt.text})
			_, err := svc.Search(context.Background(), mustRequest(t, "Sauvage", mode.ByName))
			if !errors.Is(err, domain.ErrContractViolation) {
				t.Fatalf("expected ErrContractViolation, got %v", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", ve.Kind, tt.kind)
			}
		})
	}
}

func TestSearch_RespectsConfiguredBound(t *testing.T) {
	b, err := prompt.NewBuilder(prompt.Limits{SimilarPerfumes: 3}, prompt.English)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	item := `{"name":"A","brand":"B","origin":"C","similarityReason":"D"}`
	text := `{"originalPerfume":{"name":"X","brand":"Y","description":"Z",
		"notes":{"top":[],"middle":[],"base":[]}},"similarPerfumes":[` +
		item + "," + item + "," + item + "," + item + `]}`

	svc := New(b, &mockGenerator{text: text})
	_, err = svc.Search(context.Background(), mustRequest(t, "X", mode.ByName))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Path != "similarPerfumes" {
		t.Fatalf("expected mismatch at similarPerfumes, got %v", err)
	}
}

func TestSearch_RecordsUsage(t *testing.T) {
	svc := New(newBuilder(t), &mockGenerator{text: sauvageJSON})
	ctx, usage := domain.NewContextWithUsage(context.Background())

	if _, err := svc.Search(ctx, mustRequest(t, "Sauvage", mode.ByName)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !usage.Used {
		t.Error("expected usage to be recorded")
	}

	failing := New(newBuilder(t), &mockGenerator{err: errors.New("quota")})
	ctx, usage = domain.NewContextWithUsage(context.Background())
	_, _ = failing.Search(ctx, mustRequest(t, "Sauvage", mode.ByName))
	if usage.Used {
		t.Error("a failed provider call must not record usage")
	}
}
