package store

import (
	"context"

	"github.com/oneconcern/verstore/pkg/model"
)

// A Repository is a versioned tree of directories and files
type Repository interface {
	String() string

	// Info about the repository: root, unique ID and latest revision
	Info(context.Context) (model.RepositoryInfo, error)

	// CheckPath tells what kind of node sits at a path, at some revision
	CheckPath(ctx context.Context, path string, rev model.Revision) (model.NodeKind, error)

	// GetFile retrieves the content and properties of a file, at some revision
	GetFile(ctx context.Context, path string, rev model.Revision) ([]byte, model.Properties, error)

	// Log yields the commit info of some revision
	Log(ctx context.Context, rev model.Revision) (model.CommitInfo, error)

	// BeginCommit starts a transaction based on the latest revision
	BeginCommit(ctx context.Context, message string) (Transaction, error)

	Close() error
}

// A Transaction stages edits to be committed as a single new revision.
//
// Edits are validated as they come, but nothing is visible to readers until Commit.
// A transaction may not be reused after Commit or Abort.
type Transaction interface {
	ID() string

	AddDirectory(path string) error

	// OpenFile opens an existing file for edition (exists is true), or adds a new one
	OpenFile(path string, exists bool) error

	// WriteDelta appends a window of content to an open file.
	// The first window written replaces the previous content.
	WriteDelta(path string, window []byte) error

	SetProperty(path, key string, value model.PropertyValue) error

	// CloseFile verifies the checksum of the content written, if any
	CloseFile(path, checksum string) error

	Commit(context.Context) (model.CommitInfo, error)
	Abort(context.Context) error
}
