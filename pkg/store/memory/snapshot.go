package memory

import (
	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
)

var _ store.Snapshot = snapshot{}

type snapshot struct {
	rev  model.Revision
	tree *iradix.Tree
}

func (s snapshot) Revision() model.Revision {
	return s.rev
}

func (s snapshot) Node(path string) (store.Node, bool, error) {
	if path == "" {
		return store.Node{Kind: model.NodeDir}, true, nil
	}
	v, ok := s.tree.Get([]byte(path))
	if !ok {
		return store.Node{}, false, nil
	}
	return v.(store.Node), true, nil
}
