package core

import (
	"context"
	"strings"
	"sync"

	"github.com/oneconcern/verstore/pkg/codec"
	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/schema"
	"github.com/oneconcern/verstore/pkg/store"
	"github.com/oneconcern/verstore/pkg/store/bdgr"
	"github.com/oneconcern/verstore/pkg/store/instrumented"
	"github.com/oneconcern/verstore/pkg/store/memory"
	storestatus "github.com/oneconcern/verstore/pkg/store/status"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	memScheme       = "mem://"
	badgerScheme    = "badger://"
	badgerMemScheme = "badger+mem://"
)

// Store is a connection to a versioned repository.
//
// It holds the codec registry and the catalog of storable types shared by its writers and readers,
// as well as the commit lock: writes through the same Store are serialized.
type Store struct {
	repo    store.Repository
	codecs  *codec.Registry
	catalog *schema.Catalog
	l       *zap.Logger
	message string

	registerer prometheus.Registerer
	metrics    *Metrics
	tracer     opentracing.Tracer

	commitLock sync.Mutex
}

func defaultStore() *Store {
	return &Store{
		l:       zap.NewNop(),
		message: DefaultCommitMessage,
	}
}

// New connects to a repository, and checks the connection
func New(repo store.Repository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, status.ErrStoreIO.WrapMessage("no repository")
	}
	s := defaultStore()
	for _, apply := range opts {
		apply(s)
	}
	if s.codecs == nil {
		s.codecs = codec.NewRegistry(codec.Logger(s.l))
	}
	s.catalog = schema.NewCatalog(schema.NewInspector(s.codecs), schema.Logger(s.l))

	if s.registerer != nil {
		m, err := NewMetrics(s.registerer)
		if err != nil {
			return nil, err
		}
		s.metrics = m
	}
	if s.tracer != nil {
		repo = instrumented.New(s.tracer, s.l, repo)
	}
	s.repo = repo

	info, err := repo.Info(context.Background())
	if err != nil {
		return nil, status.ErrStoreIO.WrapWithLog(s.l, err, zap.Stringer("repository", repo))
	}
	s.l.Info("connected to repository",
		zap.String("root", info.Root),
		zap.String("uuid", info.UUID),
		zap.Stringer("head", info.Head),
	)
	return s, nil
}

// Open a repository from its URL, then connect to it
func Open(ctx context.Context, url string, opts ...Option) (*Store, error) {
	settings := defaultStore()
	for _, apply := range opts {
		apply(settings)
	}
	repo, err := OpenRepository(ctx, url, settings.l)
	if err != nil {
		return nil, err
	}
	s, err := New(repo, opts...)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return s, nil
}

// OpenRepository opens a repository from its URL.
//
// Supported URLs are:
//
//	mem://<name>          a process-wide in-memory repository
//	badger:///abs/dir     a badger repository in some directory
//	badger://rel/dir      a badger repository, relative to the current directory
//	badger+mem://         an in-memory badger repository
func OpenRepository(ctx context.Context, url string, l *zap.Logger) (store.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.ErrStoreIO.Wrap(err)
	}
	if l == nil {
		l = zap.NewNop()
	}

	switch {
	case strings.HasPrefix(url, memScheme):
		name := strings.TrimPrefix(url, memScheme)
		if name == "" {
			return nil, storestatus.ErrUnsupportedURL.WrapMessage("%q: a name is required", url)
		}
		return memory.Named(name, memory.Logger(l)), nil

	case strings.HasPrefix(url, badgerMemScheme):
		repo, err := bdgr.Open("", bdgr.InMemory(true), bdgr.Logger(l))
		if err != nil {
			return nil, status.ErrStoreIO.WrapWithLog(l, err, zap.String("url", url))
		}
		return repo, nil

	case strings.HasPrefix(url, badgerScheme):
		dir := strings.TrimPrefix(url, badgerScheme)
		if dir == "" {
			return nil, storestatus.ErrUnsupportedURL.WrapMessage("%q: a directory is required", url)
		}
		repo, err := bdgr.Open(dir, bdgr.Logger(l))
		if err != nil {
			return nil, status.ErrStoreIO.WrapWithLog(l, err, zap.String("url", url))
		}
		return repo, nil

	default:
		return nil, storestatus.ErrUnsupportedURL.WrapMessage("%q", url)
	}
}

// Repository used by this store
func (s *Store) Repository() store.Repository {
	return s.repo
}

// Codecs used by this store
func (s *Store) Codecs() *codec.Registry {
	return s.codecs
}

// Catalog of storable types known to this store
func (s *Store) Catalog() *schema.Catalog {
	return s.catalog
}

// Metrics collected by this store, if enabled
func (s *Store) Metrics() *Metrics {
	return s.metrics
}

// Register a storable type
func (s *Store) Register(decl *schema.Declaration) (*schema.Type, error) {
	return s.catalog.Register(decl)
}

// Info about the repository
func (s *Store) Info(ctx context.Context) (model.RepositoryInfo, error) {
	info, err := s.repo.Info(ctx)
	if err != nil {
		return model.RepositoryInfo{}, status.ErrStoreIO.Wrap(err)
	}
	return info, nil
}

// Log yields the commit info of some revision
func (s *Store) Log(ctx context.Context, rev model.Revision) (model.CommitInfo, error) {
	info, err := s.repo.Log(ctx, rev)
	if err != nil {
		return model.CommitInfo{}, status.ErrStoreIO.Wrap(err)
	}
	return info, nil
}

// Close the connection to the repository
func (s *Store) Close() error {
	if err := s.repo.Close(); err != nil {
		return status.ErrStoreIO.Wrap(err)
	}
	return nil
}

// NewWriter builds an object writer
func (s *Store) NewWriter() *Writer {
	return &Writer{s: s, l: s.l.With(zap.String("component", "writer"))}
}

// NewReader builds an object reader
func (s *Store) NewReader() *Reader {
	return &Reader{s: s, l: s.l.With(zap.String("component", "reader"))}
}
