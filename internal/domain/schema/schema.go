// Package schema describes the JSON shape a provider must produce.
//
// A Node is sent to the provider as a generation constraint and later used to
// check what came back. Object fields keep declaration order so that checks
// report the same first failure every time.
package schema

// Type is a JSON value type.
type Type string

// Supported value types.
const (
	Object Type = "object"
	Array  Type = "array"
	String Type = "string"
)

// Node is one value in the schema tree.
type Node struct {
	Type        Type
	Description string
	// Fields are the properties of an Object, in declaration order.
	Fields []Field
	// Items describes Array elements.
	Items *Node
	// MaxItems bounds Array length; 0 means unbounded.
	MaxItems int
}

// Field is a named Object property.
type Field struct {
	Name     string
	Required bool
	Node     Node
}

// Str declares a string value.
func Str(description string) Node {
	return Node{Type: String, Description: description}
}

// Obj declares an object with the given fields.
func Obj(description string, fields ...Field) Node {
	return Node{Type: Object, Description: description, Fields: fields}
}

// ArrayOf declares an array of items with at most maxItems elements.
func ArrayOf(description string, items Node, maxItems int) Node {
	return Node{Type: Array, Description: description, Items: &items, MaxItems: maxItems}
}

// Required declares a required field.
func Required(name string, n Node) Field {
	return Field{Name: name, Required: true, Node: n}
}

// FieldNames returns all field names in declaration order.
func (n *Node) FieldNames() []string {
	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.Name
	}
	return names
}

// RequiredNames returns the required field names in declaration order.
func (n *Node) RequiredNames() []string {
	var names []string
	for _, f := range n.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
