package request

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/scenttwin/internal/domain"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
)

// MaxQueryLength is the maximum allowed search query length in characters.
const MaxQueryLength = 1000

// QueryField is the body field carrying the search text.
const QueryField = "query"

// ModeFields lists the body fields accepted as the mode selector.
// The first entry is canonical; the rest are legacy aliases.
var ModeFields = []string{"searchType", "type"}

// Request is a validated search query.
type Request struct {
	query      string
	searchMode mode.Mode
}

// New validates and normalizes search parameters. The query is trimmed.
func New(query string, m mode.Mode) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.Reject("query must not be empty")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, domain.Reject("query too long (max %d chars)", MaxQueryLength)
	}
	if !m.IsValid() {
		return Request{}, domain.Reject("invalid search type %q: expected %s or %s", m, mode.ByName, mode.ByNotes)
	}
	return Request{query: query, searchMode: m}, nil
}

// Classify validates a decoded JSON body and determines its search mode.
// Every failure is a *domain.RejectionError.
func Classify(body any) (Request, error) {
	obj, ok := body.(map[string]any)
	if !ok {
		return Request{}, domain.Reject("request body must be a JSON object")
	}

	rawQuery, hasQuery := obj[QueryField]
	rawMode, hasMode, err := modeSelector(obj)
	if err != nil {
		return Request{}, err
	}
	if !hasQuery || !hasMode {
		return Request{}, domain.Reject("missing %q or %q parameter", QueryField, ModeFields[0])
	}

	query, ok := rawQuery.(string)
	if !ok {
		return Request{}, domain.Reject("%q must be a string", QueryField)
	}
	if strings.TrimSpace(query) == "" {
		return Request{}, domain.Reject("query must not be empty")
	}

	m, ok := rawMode.(string)
	if !ok {
		return Request{}, domain.Reject("%q must be a string", ModeFields[0])
	}

	return New(query, mode.Mode(m))
}

// modeSelector returns the mode value from whichever accepted field carries it.
// Aliases that are present must agree with each other.
func modeSelector(obj map[string]any) (any, bool, error) {
	var (
		value any
		found string
	)
	for _, name := range ModeFields {
		v, ok := obj[name]
		if !ok {
			continue
		}
		if found != "" && !sameString(v, value) {
			return nil, false, domain.Reject("conflicting %q and %q values", found, name)
		}
		if found == "" {
			value, found = v, name
		}
	}
	return value, found != "", nil
}

func sameString(a, b any) bool {
	as, aok := a.(string)
	bs, bok := b.(string)
	return aok && bok && as == bs
}

// Query returns the trimmed search text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }
