package request

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("bad test body %s: %v", body, err)
	}
	return v
}

func TestNew_TrimsQuery(t *testing.T) {
	r, err := New("  Dior Sauvage \n", mode.ByName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "Dior Sauvage" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Mode() != mode.ByName {
		t.Errorf("Mode() = %q", r.Mode())
	}
}

func TestNew_EmptyQuery(t *testing.T) {
	_, err := New("   ", mode.ByNotes)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	_, err := New(strings.Repeat("x", MaxQueryLength+1), mode.ByName)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_QueryLengthCountsRunes(t *testing.T) {
	// 1000 two-byte runes are still within the limit.
	if _, err := New(strings.Repeat("é", MaxQueryLength), mode.ByName); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := New("vanilla", "BY_BRAND")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestClassify_Valid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		query string
		mode  mode.Mode
	}{
		{"canonical field", `{"query":"Dior Sauvage","searchType":"BY_NAME"}`, "Dior Sauvage", mode.ByName},
		{"legacy alias", `{"query":"woody citrus vanilla","type":"BY_NOTES"}`, "woody citrus vanilla", mode.ByNotes},
		{"both fields agree", `{"query":"oud","searchType":"BY_NOTES","type":"BY_NOTES"}`, "oud", mode.ByNotes},
		{"extra fields ignored", `{"query":"Aventus","searchType":"BY_NAME","lang":"pt"}`, "Aventus", mode.ByName},
		{"query trimmed", `{"query":"  Aventus  ","searchType":"BY_NAME"}`, "Aventus", mode.ByName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Classify(decode(t, tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Query() != tt.query {
				t.Errorf("Query() = %q, want %q", r.Query(), tt.query)
			}
			if r.Mode() != tt.mode {
				t.Errorf("Mode() = %q, want %q", r.Mode(), tt.mode)
			}
		})
	}
}

func TestClassify_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"not an object", `["query"]`, "JSON object"},
		{"null body", `null`, "JSON object"},
		{"missing query", `{"searchType":"BY_NAME"}`, "missing"},
		{"missing mode", `{"query":"Dior Sauvage"}`, "missing"},
		{"empty object", `{}`, "missing"},
		{"query not string", `{"query":42,"searchType":"BY_NAME"}`, "must be a string"},
		{"empty query", `{"query":"","searchType":"BY_NAME"}`, "empty"},
		{"blank query", `{"query":"   \t","searchType":"BY_NOTES"}`, "empty"},
		{"mode not string", `{"query":"oud","searchType":1}`, "must be a string"},
		{"unknown mode", `{"query":"oud","searchType":"BY_BRAND"}`, "invalid search type"},
		{"lowercase mode", `{"query":"oud","type":"by_notes"}`, "invalid search type"},
		{"conflicting aliases", `{"query":"oud","searchType":"BY_NAME","type":"BY_NOTES"}`, "conflicting"},
		{"conflicting object alias", `{"query":"oud","searchType":"BY_NAME","type":{"a":1}}`, "conflicting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(decode(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
			var rej *domain.RejectionError
			if !errors.As(err, &rej) {
				t.Fatalf("expected *RejectionError, got %T", err)
			}
			if !strings.Contains(rej.Reason, tt.want) {
				t.Errorf("reason = %q, want substring %q", rej.Reason, tt.want)
			}
		})
	}
}
