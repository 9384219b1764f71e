package schema

// JSONSchema renders n as a JSON Schema document fragment.
// Objects are closed (additionalProperties false).
func (n *Node) JSONSchema() map[string]any {
	out := map[string]any{"type": string(n.Type)}
	if n.Description != "" {
		out["description"] = n.Description
	}

	switch n.Type {
	case Object:
		props := make(map[string]any, len(n.Fields))
		for i := range n.Fields {
			props[n.Fields[i].Name] = n.Fields[i].Node.JSONSchema()
		}
		out["properties"] = props
		out["additionalProperties"] = false
		if req := n.RequiredNames(); len(req) > 0 {
			out["required"] = req
		}
	case Array:
		if n.Items != nil {
			out["items"] = n.Items.JSONSchema()
		}
		if n.MaxItems > 0 {
			out["maxItems"] = n.MaxItems
		}
	}
	return out
}
