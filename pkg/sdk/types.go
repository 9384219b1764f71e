package scenttwin

import (
	"github.com/kailas-cloud/scenttwin/internal/domain/perfume"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
)

// Result types re-exported from the domain layer.
type (
	Notes             = perfume.Notes
	PerfumeProfile    = perfume.Profile
	SimilarPerfume    = perfume.Similar
	DetailsResult     = perfume.DetailsResult
	PerfumeSuggestion = perfume.Suggestion
	NotesResult       = perfume.NotesResult
)

// SearchType selects the kind of search.
type SearchType = mode.Mode

// Search types.
const (
	ByName  SearchType = mode.ByName
	ByNotes SearchType = mode.ByNotes
)

// HealthStatus represents the server health report.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded"
	Checks map[string]string `json:"checks"`
}

type searchRequest struct {
	Query      string     `json:"query"`
	SearchType SearchType `json:"searchType"`
}

type errorBody struct {
	Error string `json:"error"`
}
