// Package perfume holds the result shapes returned to callers for each search mode.
package perfume

// Notes groups a fragrance's notes by stage. Each list may be empty but is always present.
type Notes struct {
	Top    []string `json:"top"`
	Middle []string `json:"middle"`
	Base   []string `json:"base"`
}

// Profile describes the perfume the caller searched for by name.
type Profile struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	Notes       Notes  `json:"notes"`
}

// Similar is an alternative ("twin", dupe or inspired) perfume.
type Similar struct {
	Name             string `json:"name"`
	Brand            string `json:"brand"`
	Origin           string `json:"origin"`
	SimilarityReason string `json:"similarityReason"`
}

// DetailsResult is the BY_NAME result.
type DetailsResult struct {
	OriginalPerfume Profile   `json:"originalPerfume"`
	SimilarPerfumes []Similar `json:"similarPerfumes"`
}

// Suggestion is one perfume matching a notes description.
type Suggestion struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
}

// NotesResult is the BY_NOTES result, in provider order.
type NotesResult []Suggestion
