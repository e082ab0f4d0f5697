// Copyright © 2018 One Concern

// Package status declares error constants returned by
// implementations of the store.Repository interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/store and one
// of its implementations.
package status

import "github.com/oneconcern/verstore/pkg/errors"

var (
	// Sentinel errors returned by implementations of the interface defined by store

	// ErrNotFound indicates that nothing exists at the requested path
	ErrNotFound = errors.New("path not found")

	// ErrNotFile indicates that the node at the requested path is not a file
	ErrNotFile = errors.New("path is not a file")

	// ErrNotDirectory indicates that the parent of some node is not a directory
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrExists indicates that a node already exists and cannot be added again
	ErrExists = errors.New("path exists already")

	// ErrConflict indicates that a transaction is out of date: a path it touches changed after it began
	ErrConflict = errors.New("transaction out of date")

	// ErrNoSuchRevision indicates a revision beyond the latest one
	ErrNoSuchRevision = errors.New("no such revision")

	// ErrChecksumMismatch indicates that file content does not match the checksum announced when closing it
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTxnClosed indicates an edit attempted on a committed or aborted transaction
	ErrTxnClosed = errors.New("transaction closed")

	// ErrFileNotOpen indicates an edit on a file which was not opened in the transaction
	ErrFileNotOpen = errors.New("file not open")

	// ErrFileOpen indicates a commit attempted while some file is still open
	ErrFileOpen = errors.New("file still open")

	// ErrInvalidProperty indicates a property which cannot be set
	ErrInvalidProperty = errors.New("invalid property")

	// ErrUnsupportedURL indicates a repository URL with an unknown scheme
	ErrUnsupportedURL = errors.New("unsupported repository url")

	// ErrRepositoryClosed indicates a repository used after Close
	ErrRepositoryClosed = errors.New("repository closed")
)
