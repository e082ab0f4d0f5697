// Package schema describes which members of a Go type are persisted, and how.
//
// Application code declares a storable type once, with a table of accessors:
//
//	decl := schema.Declare[Movie](1,
//		schema.Field("GetTitle", func(m *Movie) string { return m.Title }, func(m *Movie, v string) { m.Title = v }),
//		schema.Body("GetSynopsis", func(m *Movie) []byte { return m.Synopsis }, func(m *Movie, v []byte) { m.Synopsis = v }),
//	)
//
// or from the accessor methods of the type, resolved once:
//
//	decl := schema.Methods[Movie](1, "GetSynopsis", "GetTitle", "GetYear")
//
// An Inspector validates declarations against the codec registry.
// A Catalog keeps the validated types, and serves them to the object writer and reader.
package schema
