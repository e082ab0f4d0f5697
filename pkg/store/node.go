package store

import (
	"github.com/oneconcern/verstore/pkg/model"
)

// Node in some revision of the tree
type Node struct {
	Kind       model.NodeKind   `json:"kind" yaml:"kind"`
	Content    []byte           `json:"content,omitempty" yaml:"content,omitempty"`
	Properties model.Properties `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Modified is the revision of the last change to this node
	Modified model.Revision `json:"modified" yaml:"modified"`
}

// Snapshot is a read-only view of a committed revision
type Snapshot interface {
	Revision() model.Revision

	// Node at some clean path. The root ("") is always a directory.
	Node(path string) (Node, bool, error)
}

// Change staged for commit
type Change struct {
	Path string
	Node Node
}
