package mode

// Mode is the search strategy requested by the caller.
type Mode string

// Search mode constants.
const (
	// ByName looks up a named perfume and derives similar alternatives.
	ByName Mode = "BY_NAME"
	// ByNotes suggests perfumes matching a free-text scent description.
	ByNotes Mode = "BY_NOTES"
)

// All lists the supported modes in a stable order.
var All = []Mode{ByName, ByNotes}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == ByName || m == ByNotes
}

func (m Mode) String() string { return string(m) }
