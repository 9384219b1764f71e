// Package prompt builds the provider instruction and output schema for each search mode.
//
// Both halves come from one place so the wording of an instruction and the
// shape it asks for cannot drift apart.
package prompt

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/scenttwin/internal/domain/schema"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
)

// Default result bounds.
const (
	DefaultSimilarPerfumes  = 5
	DefaultNotesSuggestions = 6
)

// Schema names sent to providers that require one.
const (
	DetailsSchemaName = "perfume_details"
	NotesSchemaName   = "perfume_by_notes"
)

// Limits bounds how many perfumes the provider may return per mode.
type Limits struct {
	SimilarPerfumes  int
	NotesSuggestions int
}

// DefaultLimits returns the standard bounds.
func DefaultLimits() Limits {
	return Limits{
		SimilarPerfumes:  DefaultSimilarPerfumes,
		NotesSuggestions: DefaultNotesSuggestions,
	}
}

// Prompt is everything a provider needs for one request.
type Prompt struct {
	Mode        mode.Mode
	Instruction string
	SchemaName  string
	Schema      schema.Node
}

// Builder produces prompts. It is immutable and safe for concurrent use.
type Builder struct {
	limits Limits
	lang   Language
	text   catalog
}

// NewBuilder creates a builder. Zero limits fall back to defaults.
func NewBuilder(limits Limits, lang Language) (*Builder, error) {
	if limits.SimilarPerfumes <= 0 {
		limits.SimilarPerfumes = DefaultSimilarPerfumes
	}
	if limits.NotesSuggestions <= 0 {
		limits.NotesSuggestions = DefaultNotesSuggestions
	}
	if lang == "" {
		lang = PortugueseBR
	}
	text, ok := catalogs[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported prompt language %q", lang)
	}
	return &Builder{limits: limits, lang: lang, text: text}, nil
}

// Limits returns the configured bounds.
func (b *Builder) Limits() Limits { return b.limits }

// Language returns the configured locale.
func (b *Builder) Language() Language { return b.lang }

// Build returns the instruction and schema for a validated request.
func (b *Builder) Build(req request.Request) Prompt {
	m := req.Mode()
	quoted := strconv.Quote(req.Query())

	var instruction string
	switch m {
	case mode.ByName:
		instruction = fmt.Sprintf(b.text.byName, quoted, b.limits.SimilarPerfumes)
	case mode.ByNotes:
		instruction = fmt.Sprintf(b.text.byNotes, quoted, b.limits.NotesSuggestions)
	}

	return Prompt{
		Mode:        m,
		Instruction: instruction,
		SchemaName:  SchemaName(m),
		Schema:      b.Schema(m),
	}
}

// Schema returns the output schema for a mode.
func (b *Builder) Schema(m mode.Mode) schema.Node {
	if m == mode.ByNotes {
		return b.notesSchema()
	}
	return b.detailsSchema()
}

// SchemaName returns the provider-facing schema name for a mode.
func SchemaName(m mode.Mode) string {
	if m == mode.ByNotes {
		return NotesSchemaName
	}
	return DetailsSchemaName
}

func (b *Builder) detailsSchema() schema.Node {
	t := b.text
	notes := func(desc string) schema.Node { return schema.ArrayOf(desc, schema.Str(""), 0) }

	return schema.Obj("",
		schema.Required("originalPerfume", schema.Obj(t.original,
			schema.Required("name", schema.Str(t.originalName)),
			schema.Required("brand", schema.Str(t.originalBrand)),
			schema.Required("description", schema.Str(t.originalDescription)),
			schema.Required("notes", schema.Obj(t.notes,
				schema.Required("top", notes(t.notesTop)),
				schema.Required("middle", notes(t.notesMiddle)),
				schema.Required("base", notes(t.notesBase)),
			)),
		)),
		schema.Required("similarPerfumes", schema.ArrayOf(t.similarList,
			schema.Obj("",
				schema.Required("name", schema.Str(t.similarName)),
				schema.Required("brand", schema.Str(t.similarBrand)),
				schema.Required("origin", schema.Str(t.similarOrigin)),
				schema.Required("similarityReason", schema.Str(t.similarReason)),
			),
			b.limits.SimilarPerfumes,
		)),
	)
}

func (b *Builder) notesSchema() schema.Node {
	t := b.text
	return schema.ArrayOf(t.suggestionList,
		schema.Obj("",
			schema.Required("name", schema.Str(t.suggestionName)),
			schema.Required("brand", schema.Str(t.suggestionBrand)),
			schema.Required("description", schema.Str(t.suggestionDescription)),
		),
		b.limits.NotesSuggestions,
	)
}
