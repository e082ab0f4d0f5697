package model

import "github.com/oneconcern/verstore/pkg/errors"

var (
	// ErrInvalidPath indicates a malformed repository path
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidRevision indicates a revision which cannot be parsed
	ErrInvalidRevision = errors.New("invalid revision")
)
