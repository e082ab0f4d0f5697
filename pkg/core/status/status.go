// Package status exports errors produced by the core package.
//
// These errors form the taxonomy seen by callers of the object writer and reader.
// Test the kind of some returned error with errors.Is.
package status

import (
	"github.com/oneconcern/verstore/pkg/errors"
)

var (
	// ErrNotStorable indicates that a type or one of its members fails structural validation.
	// This is a caller bug: never retry.
	ErrNotStorable = errors.New("not storable")

	// ErrPathConflict indicates that a directory is required where a file exists, or the reverse
	ErrPathConflict = errors.New("path conflict")

	// ErrMissingObject indicates that no object exists at the requested path and revision
	ErrMissingObject = errors.New("missing object")

	// ErrCodec indicates that a value could not be encoded or decoded, e.g. no codec is registered for its type
	ErrCodec = errors.New("codec error")

	// ErrStoreIO wraps any failure of the underlying versioned store (transport, transaction, auth)
	ErrStoreIO = errors.New("store I/O error")
)
