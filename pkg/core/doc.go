// Package core maps typed objects onto a versioned repository.
//
// A Store connects to a repository, and holds the codecs and the catalog of storable types.
// Its Writer saves an object as a file: members become properties, and at most one member
// is written as the file content. Every write is a single commit producing a new revision.
// Its Reader rebuilds an object from a file, at any revision.
package core
