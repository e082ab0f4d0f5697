package model

// NodeKind describes what sits at some path in a revision
type NodeKind uint8

const (
	// NodeNone means nothing exists at this path
	NodeNone NodeKind = iota
	// NodeFile is a file node, with content and properties
	NodeFile
	// NodeDir is a directory node
	NodeDir
)

func (k NodeKind) String() string {
	switch k {
	case NodeFile:
		return "file"
	case NodeDir:
		return "dir"
	default:
		return "none"
	}
}

// PropertyValue is the value of a file property: either text or an opaque binary blob
type PropertyValue struct {
	Data   []byte `json:"data" yaml:"data"`
	Binary bool   `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// StringValue builds a text property value
func StringValue(s string) PropertyValue {
	return PropertyValue{Data: []byte(s)}
}

// BinaryValue builds a binary property value
func BinaryValue(b []byte) PropertyValue {
	return PropertyValue{Data: b, Binary: true}
}

// IsBinary tells if the value is an opaque blob
func (v PropertyValue) IsBinary() bool {
	return v.Binary
}

func (v PropertyValue) String() string {
	return string(v.Data)
}

// Bytes returns the raw value
func (v PropertyValue) Bytes() []byte {
	return v.Data
}

// Properties of a file, by name
type Properties map[string]PropertyValue

// Clone performs a shallow copy of the properties. Values are treated as immutable.
func (p Properties) Clone() Properties {
	c := make(Properties, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
