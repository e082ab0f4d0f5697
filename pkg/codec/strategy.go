package codec

// Strategy describes how values of some type are turned into stored text or bytes
type Strategy uint8

const (
	// Inline values convert directly to and from their textual form
	Inline Strategy = iota
	// StringConstructible values are built from and rendered to text by their own methods
	StringConstructible
	// Registered values use a custom text codec registered for their exact type
	Registered
	// OpaqueBinary values are stored as a binary blob
	OpaqueBinary
)

func (s Strategy) String() string {
	switch s {
	case Inline:
		return "inline"
	case StringConstructible:
		return "string-constructible"
	case Registered:
		return "registered"
	case OpaqueBinary:
		return "opaque-binary"
	default:
		return "unknown"
	}
}

// IsText tells if the strategy produces text rather than binary data
func (s Strategy) IsText() bool {
	return s != OpaqueBinary
}
