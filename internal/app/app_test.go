package app

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scenttwin/internal/config"
	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/scenttwin/internal/usecase/health"
)

func testConfig(driver, key string) config.Config {
	cfg := config.Config{Provider: config.ProviderConfig{Driver: driver, APIKey: key}}
	cfg.ApplyDefaults()
	return cfg
}

func TestNew_WithoutKey(t *testing.T) {
	a, err := New(context.Background(), testConfig(config.DriverGemini, ""), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Search.Configured() {
		t.Error("search must be unconfigured without a key")
	}
	if a.Model != "" {
		t.Errorf("Model = %q, want empty", a.Model)
	}

	req, _ := request.New("Sauvage", mode.ByName)
	if _, err := a.Search.Search(context.Background(), req); !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}

	report := a.Health.Check(context.Background())
	if report.Checks["provider"] != healthuc.CheckNotConfigured {
		t.Errorf("provider check = %q", report.Checks["provider"])
	}
}

func TestNew_Drivers(t *testing.T) {
	tests := []struct {
		driver    string
		wantModel string
	}{
		{config.DriverGemini, "gemini-2.5-flash"},
		{config.DriverOpenAI, "gpt-4o-mini"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := testConfig(tt.driver, "test-key")
			cfg.Provider.BaseURL = "http://127.0.0.1:1"

			a, err := New(context.Background(), cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !a.Search.Configured() {
				t.Error("search must be configured with a key")
			}
			if a.Provider != tt.driver || a.Model != tt.wantModel {
				t.Errorf("provider/model = %s/%s", a.Provider, a.Model)
			}
		})
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig("bard", "key")
	if _, err := New(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_LimitsReachBuilder(t *testing.T) {
	cfg := testConfig(config.DriverGemini, "")
	cfg.Limits.SimilarPerfumes = 3

	a, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := a.Search.Builder().Limits().SimilarPerfumes; got != 3 {
		t.Errorf("SimilarPerfumes = %d, want 3", got)
	}
}
