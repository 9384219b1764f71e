package openai

import (
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/domain/schema"
)

// wrapperField holds an array result; structured output only accepts an object root.
const wrapperField = "results"

type format struct {
	spec    *openai.ChatCompletionResponseFormatJSONSchema
	wrapped bool
}

func responseFormat(p prompt.Prompt) format {
	def := toDefinition(&p.Schema)
	wrapped := p.Schema.Type != schema.Object
	if wrapped {
		def = jsonschema.Definition{
			Type:                 jsonschema.Object,
			Properties:           map[string]jsonschema.Definition{wrapperField: def},
			Required:             []string{wrapperField},
			AdditionalProperties: false,
		}
	}
	return format{
		spec: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   p.SchemaName,
			Schema: &def,
			Strict: true,
		},
		wrapped: wrapped,
	}
}

// unwrap returns the wrapped array as text. Anything unexpected is passed
// through untouched so the response validator reports it.
func (f format) unwrap(content string) string {
	if !f.wrapped {
		return content
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return content
	}
	inner, ok := envelope[wrapperField]
	if !ok {
		return content
	}
	return string(inner)
}

// toDefinition converts a schema node. maxItems is not part of the strict
// subset; the instruction states the bound and the validator enforces it.
func toDefinition(n *schema.Node) jsonschema.Definition {
	def := jsonschema.Definition{Description: n.Description}
	switch n.Type {
	case schema.Object:
		def.Type = jsonschema.Object
		def.Properties = make(map[string]jsonschema.Definition, len(n.Fields))
		def.Required = n.FieldNames()
		def.AdditionalProperties = false
		for i := range n.Fields {
			f := &n.Fields[i]
			def.Properties[f.Name] = toDefinition(&f.Node)
		}
	case schema.Array:
		def.Type = jsonschema.Array
		if n.Items != nil {
			items := toDefinition(n.Items)
			def.Items = &items
		}
	case schema.String:
		def.Type = jsonschema.String
	}
	return def
}
