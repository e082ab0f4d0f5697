package bdgr

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
)

var _ store.Snapshot = snapshot{}

type snapshot struct {
	repo *Repository
	rev  model.Revision
}

func (r *Repository) snapshot(rev model.Revision) snapshot {
	return snapshot{repo: r, rev: rev}
}

func (s snapshot) Revision() model.Revision {
	return s.rev
}

func (s snapshot) Node(path string) (node store.Node, found bool, err error) {
	err = s.repo.view(func(txn *badger.Txn) error {
		node, found, err = s.repo.nodes.readNode(txn, path, s.rev)
		return err
	})
	return
}
