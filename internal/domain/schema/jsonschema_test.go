package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestJSONSchema(t *testing.T) {
	n := ArrayOf("perfumes", Obj("",
		Required("name", Str("perfume name")),
		Field{Name: "brand", Node: Str("")},
	), 3)

	data, err := json.Marshal(n.JSONSchema())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := map[string]any{
		"type":        "array",
		"description": "perfumes",
		"maxItems":    float64(3),
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"name"},
			"properties": map[string]any{
				"name":  map[string]any{"type": "string", "description": "perfume name"},
				"brand": map[string]any{"type": "string"},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("JSONSchema:\ngot:  %s\nwant: %v", data, want)
	}
}

func TestJSONSchema_UnboundedArray(t *testing.T) {
	n := ArrayOf("", Str(""), 0)
	s := n.JSONSchema()
	if _, ok := s["maxItems"]; ok {
		t.Error("unbounded array must not carry maxItems")
	}
	if _, ok := s["description"]; ok {
		t.Error("empty description must be omitted")
	}
}
