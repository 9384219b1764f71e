package gemini

import (
	"google.golang.org/genai"

	"github.com/kailas-cloud/scenttwin/internal/domain/schema"
)

// toSchema converts a schema node. PropertyOrdering keeps the model's output
// in declaration order.
func toSchema(n *schema.Node) *genai.Schema {
	s := &genai.Schema{Description: n.Description}
	switch n.Type {
	case schema.Object:
		s.Type = genai.TypeObject
		s.Properties = make(map[string]*genai.Schema, len(n.Fields))
		s.PropertyOrdering = n.FieldNames()
		s.Required = n.RequiredNames()
		for i := range n.Fields {
			f := &n.Fields[i]
			s.Properties[f.Name] = toSchema(&f.Node)
		}
	case schema.Array:
		s.Type = genai.TypeArray
		if n.Items != nil {
			s.Items = toSchema(n.Items)
		}
		if n.MaxItems > 0 {
			s.MaxItems = genai.Ptr(int64(n.MaxItems))
		}
	case schema.String:
		s.Type = genai.TypeString
	}
	return s
}
