package schema

import (
	"fmt"
	"strconv"
)

// RootPath names the top-level value in mismatch reports.
const RootPath = "$"

// Mismatch is the first place a value departs from its schema.
type Mismatch struct {
	Path   string
	Reason string
}

func (m *Mismatch) Error() string {
	return m.Path + ": " + m.Reason
}

// Check walks a decoded JSON value (as produced by encoding/json into any)
// against n and returns the first mismatch, or nil.
// A null value counts as missing.
func Check(n *Node, v any) *Mismatch {
	return check(n, v, "")
}

func check(n *Node, v any, path string) *Mismatch {
	switch n.Type {
	case Object:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "expected object, got %s", kindOf(v))
		}
		for _, f := range n.Fields {
			child := joinField(path, f.Name)
			fv, present := obj[f.Name]
			if !present || fv == nil {
				if f.Required {
					return mismatch(child, "missing required field")
				}
				continue
			}
			if m := check(&f.Node, fv, child); m != nil {
				return m
			}
		}
	case Array:
		arr, ok := v.([]any)
		if !ok {
			return mismatch(path, "expected array, got %s", kindOf(v))
		}
		if n.MaxItems > 0 && len(arr) > n.MaxItems {
			return mismatch(path, "has %d items, max %d", len(arr), n.MaxItems)
		}
		if n.Items == nil {
			return nil
		}
		for i, item := range arr {
			child := path + "[" + strconv.Itoa(i) + "]"
			if item == nil {
				return mismatch(child, "null item")
			}
			if m := check(n.Items, item, child); m != nil {
				return m
			}
		}
	case String:
		if _, ok := v.(string); !ok {
			return mismatch(path, "expected string, got %s", kindOf(v))
		}
	default:
		return mismatch(path, "unsupported schema type %q", n.Type)
	}
	return nil
}

// Project returns a copy of v holding only the fields n declares, matched by
// exact name. v must already pass Check against n.
func Project(n *Node, v any) any {
	switch n.Type {
	case Object:
		obj, ok := v.(map[string]any)
		if !ok {
			return v
		}
		out := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			if fv, present := obj[f.Name]; present && fv != nil {
				out[f.Name] = Project(&f.Node, fv)
			}
		}
		return out
	case Array:
		arr, ok := v.([]any)
		if !ok || n.Items == nil {
			return v
		}
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = Project(n.Items, item)
		}
		return out
	default:
		return v
	}
}

func joinField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func mismatch(path, format string, args ...any) *Mismatch {
	if path == "" {
		path = RootPath
	}
	return &Mismatch{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
