// Package model describes the base objects manipulated by verstore.
//
// The object model for verstore is composed of:
//
//	Repositories:
//	  A versioned tree of paths. Every node is either a directory or a file.
//	  A file carries a byte stream (its content) and a set of named properties.
//
//	Revisions:
//	  A revision is an immutable, point in time view of a repository, produced by a commit.
//	  Revision 0 is the empty tree. Head designates the latest revision.
//
//	Stored objects:
//	  A typed application object lives at a file path: its body member is the file content,
//	  its other members are properties named after the member ("field.title"), next to the
//	  reserved "class.name" and "class.version" properties.
package model
