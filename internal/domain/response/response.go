// Package response checks provider output against the schema it was asked to follow.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/perfume"
	"github.com/kailas-cloud/scenttwin/internal/domain/schema"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
)

// Result is a validated provider answer. Exactly one of Details or Notes is set,
// according to Mode.
type Result struct {
	Mode    mode.Mode
	Details *perfume.DetailsResult
	Notes   perfume.NotesResult
}

// Value returns the typed payload for the mode.
func (r Result) Value() any {
	if r.Mode == mode.ByNotes {
		return r.Notes
	}
	return r.Details
}

// MarshalJSON encodes the payload alone, without the mode wrapper.
// Strings are written as the provider sent them, without HTML escaping.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Value()); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Validate parses raw provider text for mode m and checks it against sch.
// Failures are *domain.ValidationError. Fields sch does not declare are
// dropped, including case variants of declared ones.
func Validate(m mode.Mode, sch schema.Node, raw string) (Result, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Result{}, &domain.ValidationError{Kind: domain.EmptyResponse}
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return Result{}, &domain.ValidationError{Kind: domain.MalformedJSON, Detail: err.Error()}
	}

	if mm := schema.Check(&sch, decoded); mm != nil {
		return Result{}, &domain.ValidationError{
			Kind:   domain.SchemaMismatch,
			Path:   mm.Path,
			Detail: mm.Reason,
		}
	}

	// Typed decoding matches keys case-insensitively, so it only sees the checked fields.
	checked := schema.Project(&sch, decoded)

	switch m {
	case mode.ByName:
		var details perfume.DetailsResult
		if err := decodeTyped(checked, &details); err != nil {
			return Result{}, err
		}
		return Result{Mode: m, Details: &details}, nil
	case mode.ByNotes:
		var notes perfume.NotesResult
		if err := decodeTyped(checked, &notes); err != nil {
			return Result{}, err
		}
		return Result{Mode: m, Notes: notes}, nil
	default:
		return Result{}, fmt.Errorf("unsupported search mode: %s", m)
	}
}

// decodeTyped maps a checked value onto the typed result.
func decodeTyped(checked, dst any) error {
	data, err := json.Marshal(checked)
	if err != nil {
		return fmt.Errorf("encode checked output: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode checked output: %w", err)
	}
	return nil
}
