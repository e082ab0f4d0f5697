/*
Package verstore saves typed objects to a versioned store, and reads them back.

Each object is stored as a file in a tree of directories: its body member is the
content of the file, its other members are properties of the file. Every write
produces a new revision of the whole tree, so former versions of an object
remain readable.

Declare storable types with pkg/schema, register custom value codecs with
pkg/codec, and connect to a repository with pkg/core. The repositories
themselves implement pkg/store: in memory, or persisted with badger.
*/
package verstore
