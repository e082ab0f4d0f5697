package bdgr

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/oneconcern/verstore/pkg/errors"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
	"github.com/oneconcern/verstore/pkg/store/status"
	"go.uber.org/zap"
)

const (
	scheme         = "badger://"
	memScheme      = "badger+mem://"
	initialMessage = "initial revision"

	commitRetries = 10
	commitBackoff = 10 * time.Millisecond
)

var (
	_ store.Repository = &Repository{}

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

func badgerRewriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return status.ErrNotFound.Wrap(err)
	case errors.Is(err, badger.ErrDBClosed):
		return status.ErrRepositoryClosed.Wrap(err)
	default:
		return err
	}
}

// Repository is a versioned tree persisted with badger
type Repository struct {
	dir      string
	inMemory bool
	uuid     string
	l        *zap.Logger
	db       *badger.DB

	cacheSize int
	nodes     *nodeCache

	commitMu sync.Mutex // serializes commits

	mu     sync.RWMutex
	closed bool
	close  sync.Once
}

// Open a badger repository located in some directory, creating it when needed
func Open(dir string, opts ...Option) (*Repository, error) {
	r := &Repository{
		dir:       dir,
		uuid:      uuid.NewString(),
		l:         zap.NewNop(),
		cacheSize: DefaultCacheSize,
	}
	for _, apply := range opts {
		apply(r)
	}
	nodes, err := newNodeCache(r.cacheSize)
	if err != nil {
		return nil, err
	}
	r.nodes = nodes
	r.l = r.l.With(zap.String("repository", r.String()))

	var options badger.Options
	if r.inMemory {
		options = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.New("open badger repository").Wrap(err)
		}
		options = badger.DefaultOptions(dir)
	}
	options = options.
		WithLogger(newBadgerLogger(r.l)).
		WithLoggingLevel(badger.WARNING).
		WithMetricsEnabled(false)

	db, err := badger.Open(options)
	if err != nil {
		return nil, err
	}
	r.db = db

	if err = r.initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

// initialize a new repository with its empty initial revision, or picks the UUID of an existing one
func (r *Repository) initialize() error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(uuidKey)
		if err == nil {
			id, e := item.ValueCopy(nil)
			if e != nil {
				return e
			}
			r.uuid = string(id)
			r.l.Debug("opened existing repository", zap.String("uuid", r.uuid))
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		info, err := json.Marshal(model.CommitInfo{
			Revision:  model.InitialRevision,
			Message:   initialMessage,
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err = txn.Set(uuidKey, []byte(r.uuid)); err != nil {
			return err
		}
		if err = txn.Set(revKey(model.InitialRevision), info); err != nil {
			return err
		}
		r.l.Info("created repository", zap.String("uuid", r.uuid))
		return txn.Set(headKey, encodeRevision(model.InitialRevision))
	})
}

func (r *Repository) String() string {
	if r.inMemory {
		return memScheme
	}
	return scheme + r.dir
}

// view runs a read-only badger transaction, unless the repository is closed
func (r *Repository) view(fn func(*badger.Txn) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return status.ErrRepositoryClosed
	}
	return badgerRewriteError(r.db.View(fn))
}

func readHead(txn *badger.Txn) (model.Revision, error) {
	item, err := txn.Get(headKey)
	if err != nil {
		return 0, err
	}
	b, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}
	return decodeRevision(b), nil
}

// resolveRevision checks that some revision exists, and resolves HEAD
func resolveRevision(txn *badger.Txn, rev model.Revision) (model.Revision, error) {
	head, err := readHead(txn)
	if err != nil {
		return 0, err
	}
	if rev.IsHead() {
		return head, nil
	}
	if rev > head {
		return 0, status.ErrNoSuchRevision.WrapMessage("revision %v, latest is %v", rev, head)
	}
	return rev, nil
}

func readNode(txn *badger.Txn, path string, rev model.Revision) (store.Node, bool, error) {
	if path == "" {
		return store.Node{Kind: model.NodeDir}, true, nil
	}
	prefix := nodePrefix(path)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.Prefix = prefix
	opts.PrefetchValues = false

	iter := txn.NewIterator(opts)
	defer iter.Close()

	iter.Seek(nodeKey(path, rev))
	if !iter.ValidForPrefix(prefix) {
		return store.Node{}, false, nil
	}
	data, err := iter.Item().ValueCopy(nil)
	if err != nil {
		return store.Node{}, false, err
	}
	var node store.Node
	if err = json.Unmarshal(data, &node); err != nil {
		return store.Node{}, false, errors.New("corrupted node record").Wrap(err)
	}
	if node.Kind == model.NodeNone {
		return store.Node{}, false, nil
	}
	return node, true, nil
}

// Info about the repository
func (r *Repository) Info(_ context.Context) (model.RepositoryInfo, error) {
	var head model.Revision
	err := r.view(func(txn *badger.Txn) (err error) {
		head, err = readHead(txn)
		return
	})
	if err != nil {
		return model.RepositoryInfo{}, err
	}
	return model.RepositoryInfo{
		Root: r.String(),
		UUID: r.uuid,
		Head: head,
	}, nil
}

// Log yields the commit info of some revision
func (r *Repository) Log(_ context.Context, rev model.Revision) (model.CommitInfo, error) {
	var info model.CommitInfo
	err := r.view(func(txn *badger.Txn) error {
		resolved, err := resolveRevision(txn, rev)
		if err != nil {
			return err
		}
		item, err := txn.Get(revKey(resolved))
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &info)
	})
	return info, err
}

// CheckPath tells what kind of node sits at a path
func (r *Repository) CheckPath(_ context.Context, path string, rev model.Revision) (model.NodeKind, error) {
	p, err := model.CleanPath(path)
	if err != nil {
		return model.NodeNone, err
	}
	kind := model.NodeNone
	err = r.view(func(txn *badger.Txn) error {
		resolved, err := resolveRevision(txn, rev)
		if err != nil {
			return err
		}
		node, found, err := r.nodes.readNode(txn, p, resolved)
		if err != nil || !found {
			return err
		}
		kind = node.Kind
		return nil
	})
	return kind, err
}

// GetFile retrieves the content and properties of a file
func (r *Repository) GetFile(_ context.Context, path string, rev model.Revision) ([]byte, model.Properties, error) {
	p, err := model.CleanPath(path)
	if err != nil {
		return nil, nil, err
	}
	var node store.Node
	err = r.view(func(txn *badger.Txn) error {
		resolved, err := resolveRevision(txn, rev)
		if err != nil {
			return err
		}
		var found bool
		node, found, err = r.nodes.readNode(txn, p, resolved)
		switch {
		case err != nil:
			return err
		case !found:
			return status.ErrNotFound.WrapMessage("%q at revision %v", p, resolved)
		case node.Kind != model.NodeFile:
			return status.ErrNotFile.WrapMessage("%q at revision %v", p, resolved)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	content := make([]byte, len(node.Content))
	copy(content, node.Content)
	return content, node.Properties.Clone(), nil
}

// BeginCommit starts a transaction based on the latest revision
func (r *Repository) BeginCommit(_ context.Context, message string) (store.Transaction, error) {
	var head model.Revision
	err := r.view(func(txn *badger.Txn) (err error) {
		head, err = readHead(txn)
		return
	})
	if err != nil {
		return nil, err
	}
	return newTransaction(r, r.snapshot(head), message), nil
}

func (r *Repository) commit(ctx context.Context, staging *store.Staging, id, message string) (model.CommitInfo, error) {
	r.commitMu.Lock()
	defer r.commitMu.Unlock()

	var head model.Revision
	err := r.view(func(txn *badger.Txn) (err error) {
		head, err = readHead(txn)
		return
	})
	if err != nil {
		return model.CommitInfo{}, err
	}
	if err = staging.Validate(r.snapshot(head)); err != nil {
		return model.CommitInfo{}, err
	}

	next := head + 1
	changes, err := staging.Changes(next)
	if err != nil {
		return model.CommitInfo{}, err
	}
	info := model.CommitInfo{
		Revision:  next,
		TxnID:     id,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	records, err := encodeChanges(changes)
	if err != nil {
		return model.CommitInfo{}, err
	}
	infoRecord, err := json.Marshal(info)
	if err != nil {
		return model.CommitInfo{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return model.CommitInfo{}, status.ErrRepositoryClosed
	}

	err = backoff.Retry(func() error {
		e := r.db.Update(func(txn *badger.Txn) error {
			for i, change := range changes {
				if err := txn.Set(nodeKey(change.Path, next), records[i]); err != nil {
					return err
				}
			}
			if err := txn.Set(revKey(next), infoRecord); err != nil {
				return err
			}
			return txn.Set(headKey, encodeRevision(next))
		})
		if e != nil {
			if errors.Is(e, badger.ErrConflict) {
				return e // retry
			}
			return backoff.Permanent(e)
		}
		return nil
	},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(commitBackoff), commitRetries), ctx),
	)
	if err != nil {
		return model.CommitInfo{}, badgerRewriteError(err)
	}

	r.l.Debug("committed revision",
		zap.Int64("revision", int64(next)),
		zap.String("txn", id),
		zap.Int("changes", len(changes)),
	)
	return info, nil
}

func encodeChanges(changes []store.Change) ([][]byte, error) {
	records := make([][]byte, 0, len(changes))
	for _, change := range changes {
		data, err := json.Marshal(change.Node)
		if err != nil {
			return nil, err
		}
		records = append(records, data)
	}
	return records, nil
}

// Close the underlying badger store
func (r *Repository) Close() error {
	var err error

	r.close.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.closed = true
		if r.db != nil {
			err = r.db.Close()
		}
	})

	return err
}
