package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
	"github.com/oneconcern/verstore/pkg/store/status"
	"go.uber.org/zap"
)

const (
	scheme         = "mem://"
	initialMessage = "initial revision"
)

var _ store.Repository = &Repository{}

type revision struct {
	tree *iradix.Tree
	info model.CommitInfo
}

func (r revision) snapshot() snapshot {
	return snapshot{rev: r.info.Revision, tree: r.tree}
}

// Repository is a versioned tree held in memory
type Repository struct {
	name string
	uuid string
	l    *zap.Logger

	commitMu sync.Mutex // serializes commits

	mu        sync.RWMutex
	revisions []revision
	closed    bool
}

// New in-memory repository, starting with an empty initial revision
func New(name string, opts ...Option) *Repository {
	r := &Repository{
		name: name,
		uuid: uuid.NewString(),
		l:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	r.revisions = []revision{{
		tree: iradix.New(),
		info: model.CommitInfo{
			Revision:  model.InitialRevision,
			Message:   initialMessage,
			Timestamp: time.Now().UTC(),
		},
	}}
	r.l = r.l.With(zap.String("repository", r.String()))
	return r
}

func (r *Repository) String() string {
	return scheme + r.name
}

func (r *Repository) resolve(rev model.Revision) (revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return revision{}, status.ErrRepositoryClosed
	}
	head := len(r.revisions) - 1
	if rev.IsHead() {
		return r.revisions[head], nil
	}
	if int64(rev) > int64(head) {
		return revision{}, status.ErrNoSuchRevision.WrapMessage("revision %v, latest is %d", rev, head)
	}
	return r.revisions[rev], nil
}

// Info about the repository
func (r *Repository) Info(_ context.Context) (model.RepositoryInfo, error) {
	head, err := r.resolve(model.Head)
	if err != nil {
		return model.RepositoryInfo{}, err
	}
	return model.RepositoryInfo{
		Root: r.String(),
		UUID: r.uuid,
		Head: head.info.Revision,
	}, nil
}

// Log yields the commit info of some revision
func (r *Repository) Log(_ context.Context, rev model.Revision) (model.CommitInfo, error) {
	resolved, err := r.resolve(rev)
	if err != nil {
		return model.CommitInfo{}, err
	}
	return resolved.info, nil
}

// CheckPath tells what kind of node sits at a path
func (r *Repository) CheckPath(_ context.Context, path string, rev model.Revision) (model.NodeKind, error) {
	p, err := model.CleanPath(path)
	if err != nil {
		return model.NodeNone, err
	}
	resolved, err := r.resolve(rev)
	if err != nil {
		return model.NodeNone, err
	}
	node, found, _ := resolved.snapshot().Node(p)
	if !found {
		return model.NodeNone, nil
	}
	return node.Kind, nil
}

// GetFile retrieves the content and properties of a file
func (r *Repository) GetFile(_ context.Context, path string, rev model.Revision) ([]byte, model.Properties, error) {
	p, err := model.CleanPath(path)
	if err != nil {
		return nil, nil, err
	}
	resolved, err := r.resolve(rev)
	if err != nil {
		return nil, nil, err
	}
	node, found, _ := resolved.snapshot().Node(p)
	switch {
	case !found:
		return nil, nil, status.ErrNotFound.WrapMessage("%q at revision %v", p, resolved.info.Revision)
	case node.Kind != model.NodeFile:
		return nil, nil, status.ErrNotFile.WrapMessage("%q at revision %v", p, resolved.info.Revision)
	}
	content := make([]byte, len(node.Content))
	copy(content, node.Content)
	return content, node.Properties.Clone(), nil
}

// BeginCommit starts a transaction based on the latest revision
func (r *Repository) BeginCommit(_ context.Context, message string) (store.Transaction, error) {
	head, err := r.resolve(model.Head)
	if err != nil {
		return nil, err
	}
	return newTransaction(r, head.snapshot(), message), nil
}

func (r *Repository) commit(staging *store.Staging, id, message string) (model.CommitInfo, error) {
	r.commitMu.Lock()
	defer r.commitMu.Unlock()

	head, err := r.resolve(model.Head)
	if err != nil {
		return model.CommitInfo{}, err
	}
	if err = staging.Validate(head.snapshot()); err != nil {
		return model.CommitInfo{}, err
	}

	next := head.info.Revision + 1
	changes, err := staging.Changes(next)
	if err != nil {
		return model.CommitInfo{}, err
	}

	txn := head.tree.Txn()
	for _, change := range changes {
		txn.Insert([]byte(change.Path), change.Node)
	}
	committed := revision{
		tree: txn.Commit(),
		info: model.CommitInfo{
			Revision:  next,
			TxnID:     id,
			Message:   message,
			Timestamp: time.Now().UTC(),
		},
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return model.CommitInfo{}, status.ErrRepositoryClosed
	}
	r.revisions = append(r.revisions, committed)
	r.mu.Unlock()

	r.l.Debug("committed revision",
		zap.Int64("revision", int64(next)),
		zap.String("txn", id),
		zap.Int("changes", len(changes)),
	)
	return committed.info, nil
}

// Close the repository. Any further call fails with status.ErrRepositoryClosed.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *Repository) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}
