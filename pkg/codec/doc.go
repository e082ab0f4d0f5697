// Package codec decides how a Go value is stored as a file property or as file content, and back.
//
// Every value type resolves to one of four strategies, tried in this order:
//
//   - Inline: predeclared scalars (bool, string, integers, floats), formatted with strconv.
//   - Registered: a text codec explicitly registered for this exact type.
//   - StringConstructible: types which build from text (encoding.TextUnmarshaler) and
//     render as text (encoding.TextMarshaler or fmt.Stringer), e.g. time.Time or uuid.UUID.
//   - OpaqueBinary: anything else, as a deterministic CBOR blob.
//
// An explicit registration always wins over the structural text rule. A pointer type
// resolves through its element when the element has a text strategy.
//
// Registration is expected during setup, but is safe to run concurrently with lookups.
package codec
