package core

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/oneconcern/verstore/internal/rand"
	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/schema"
	"github.com/oneconcern/verstore/pkg/store"
	"github.com/oneconcern/verstore/pkg/store/memory"
	"github.com/oneconcern/verstore/pkg/store/mockstore"
	storestatus "github.com/oneconcern/verstore/pkg/store/status"
	"github.com/oneconcern/verstore/pkg/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
)

func TestWriteProperties(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	rev, err := s.NewWriter().Write(ctx, "/films/fantasy/wild", wildThings())
	require.NoError(t, err)
	assert.Equal(t, model.Revision(1), rev)

	content, props, err := s.Repository().GetFile(ctx, "films/fantasy/wild", rev)
	require.NoError(t, err)
	assert.Equal(t, wildThings().Synopsis, string(content))

	assert.Equal(t, "github.com/oneconcern/verstore/pkg/core.movie", props[model.ClassNameProperty].String())
	assert.Equal(t, "2", props[model.ClassVersionProperty].String())
	assert.Equal(t, "Where the Wild Things Are", props["field.title"].String())
	assert.Equal(t, "2009", props["field.year"].String())
	assert.Equal(t, "fantasy", props["field.genre"].String())
	assert.Equal(t, "2009-10-16T00:00:00Z", props["field.released"].String())
	assert.Equal(t, "6f1c8e38-3c2a-4c8e-9f4e-0b8f5a7f2d11", props["field.identifier"].String())
	assert.Equal(t, "3.5", props["field.rating"].String())
	assert.True(t, props["field.cast"].IsBinary())
	assert.False(t, props["field.title"].IsBinary())
	assert.NotContains(t, props, "field.synopsis", "the body is stored as content")
	assert.Equal(t, "synopsis", props[model.ClassBodyProperty].String())

	for _, dir := range []string{"films", "films/fantasy"} {
		kind, err := s.Repository().CheckPath(ctx, dir, rev)
		require.NoError(t, err)
		assert.Equal(t, model.NodeDir, kind)
	}
}

func TestWriteAbsentMembers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	m := wildThings()
	m.Rating = nil
	m.Cast = nil
	rev, err := s.NewWriter().Write(ctx, "films/wild", m)
	require.NoError(t, err)

	_, props, err := s.Repository().GetFile(ctx, "films/wild", rev)
	require.NoError(t, err)
	assert.NotContains(t, props, "field.rating")
	assert.NotContains(t, props, "field.cast")
	assert.Contains(t, props, "field.title")
}

func TestWriteCarriesOver(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	w := s.NewWriter()

	_, err := w.Write(ctx, "films/wild", wildThings())
	require.NoError(t, err)

	update := wildThings()
	update.Rating = nil
	update.Title = "Where the Wild Things Are (director's cut)"
	rev, err := w.Write(ctx, "films/wild", update)
	require.NoError(t, err)
	assert.Equal(t, model.Revision(2), rev)

	got, err := Read[movie](ctx, s.NewReader(), "films/wild", model.Head)
	require.NoError(t, err)
	assert.Equal(t, update.Title, got.Title)
	require.NotNil(t, got.Rating, "unwritten properties carry over")
	assert.Equal(t, float32(3.5), *got.Rating)
}

func TestWriteByValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	_, err := s.NewWriter().Write(ctx, "films/wild", *wildThings())
	require.NoError(t, err)

	got, err := Read[movie](ctx, s.NewReader(), "films/wild", model.Head)
	require.NoError(t, err)
	assert.Equal(t, wildThings(), got)
}

func TestWritePathConflicts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	w := s.NewWriter()

	_, err := w.Write(ctx, "films/wild", wildThings())
	require.NoError(t, err)

	_, err = w.Write(ctx, "films/wild/sequel", wildThings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrPathConflict))

	_, err = w.Write(ctx, "films", wildThings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrPathConflict))

	for _, path := range []string{"", "/", "films//wild", "films/../wild"} {
		_, err = w.Write(ctx, path, wildThings())
		require.Errorf(t, err, "path %q", path)
		assert.Truef(t, errors.Is(err, model.ErrInvalidPath), "path %q", path)
	}

	info, err := s.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Revision(1), info.Head, "failed writes leave no revision")
}

func TestWriteNotStorable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)
	w := s.NewWriter()

	type unknown struct{ X int }
	var nilMovie *movie

	for _, obj := range []interface{}{nil, nilMovie, unknown{X: 1}, &unknown{}, 42} {
		_, err := w.Write(ctx, "films/wild", obj)
		require.Errorf(t, err, "object %#v", obj)
		assert.Truef(t, errors.Is(err, status.ErrNotStorable), "object %#v: %v", obj, err)
	}
}

func TestWriteCodecFailure(t *testing.T) {
	ctx := context.Background()
	repo := memory.New(t.Name())
	s := newTestStore(t, repo)

	m := wildThings()
	m.Genre = genre(42)
	_, err := s.NewWriter().Write(ctx, "films/wild", m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrCodec))

	info, err := repo.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.InitialRevision, info.Head)
}

func TestWriteDeltaWindows(t *testing.T) {
	ctx := context.Background()

	var (
		mu      sync.Mutex
		windows [][]byte
		props   = make(map[string]model.PropertyValue)
		closed  string
	)
	txn := &mockstore.TransactionMock{
		IDFunc:           func() string { return "txn-mock" },
		AddDirectoryFunc: func(string) error { return nil },
		OpenFileFunc:     func(string, bool) error { return nil },
		WriteDeltaFunc: func(_ string, window []byte) error {
			mu.Lock()
			defer mu.Unlock()
			windows = append(windows, append([]byte(nil), window...))
			return nil
		},
		SetPropertyFunc: func(_, key string, value model.PropertyValue) error {
			props[key] = value
			return nil
		},
		CloseFileFunc: func(_, checksum string) error {
			closed = checksum
			return nil
		},
		CommitFunc: func(context.Context) (model.CommitInfo, error) {
			return model.CommitInfo{Revision: 7, TxnID: "txn-mock"}, nil
		},
	}
	repo := &mockstore.RepositoryMock{
		InfoFunc: func(context.Context) (model.RepositoryInfo, error) {
			return model.RepositoryInfo{Root: "mock", Head: 6}, nil
		},
		CheckPathFunc: func(context.Context, string, model.Revision) (model.NodeKind, error) {
			return model.NodeNone, nil
		},
		BeginCommitFunc: func(context.Context, string) (store.Transaction, error) {
			return txn, nil
		},
		StringFunc: func() string { return "mock://" },
	}
	s := newTestStore(t, repo)

	m := wildThings()
	m.Synopsis = rand.LetterString(250 * 1024)
	rev, err := s.NewWriter().Write(ctx, "films/long", m)
	require.NoError(t, err)
	assert.Equal(t, model.Revision(7), rev)

	require.Len(t, windows, 3)
	assert.Len(t, windows[0], DeltaWindowSize)
	assert.Len(t, windows[1], DeltaWindowSize)
	assert.Len(t, windows[2], 250*1024-2*DeltaWindowSize)
	assert.Equal(t, store.Checksum([]byte(m.Synopsis)), closed)

	require.Len(t, txn.AddDirectoryCalls(), 1)
	assert.Equal(t, "films", txn.AddDirectoryCalls()[0].Path)
	require.Len(t, txn.OpenFileCalls(), 1)
	assert.False(t, txn.OpenFileCalls()[0].Exists)

	// class properties come first, then fields in order
	calls := txn.SetPropertyCalls()
	require.NotEmpty(t, calls)
	assert.Equal(t, model.ClassVersionProperty, calls[0].Key)
	assert.Equal(t, model.ClassNameProperty, calls[1].Key)
	keys := make([]string, 0, len(calls)-2)
	for _, call := range calls[2:] {
		keys = append(keys, call.Key)
	}
	assert.True(t, sort.StringsAreSorted(keys))
	assert.Len(t, props, len(calls))
	assert.Empty(t, txn.AbortCalls())
}

func TestWriteAbortsOnCommitFailure(t *testing.T) {
	ctx := context.Background()

	txn := &mockstore.TransactionMock{
		IDFunc:           func() string { return "txn-conflict" },
		AddDirectoryFunc: func(string) error { return nil },
		OpenFileFunc:     func(string, bool) error { return nil },
		WriteDeltaFunc:   func(string, []byte) error { return nil },
		SetPropertyFunc:  func(string, string, model.PropertyValue) error { return nil },
		CloseFileFunc:    func(string, string) error { return nil },
		CommitFunc: func(context.Context) (model.CommitInfo, error) {
			return model.CommitInfo{}, storestatus.ErrConflict.WrapMessage("films/wild changed")
		},
		AbortFunc: func(context.Context) error { return nil },
	}
	repo := &mockstore.RepositoryMock{
		InfoFunc: func(context.Context) (model.RepositoryInfo, error) {
			return model.RepositoryInfo{}, nil
		},
		CheckPathFunc: func(_ context.Context, path string, _ model.Revision) (model.NodeKind, error) {
			if path == "films" {
				return model.NodeDir, nil
			}
			return model.NodeFile, nil
		},
		BeginCommitFunc: func(context.Context, string) (store.Transaction, error) {
			return txn, nil
		},
		StringFunc: func() string { return "mock://" },
	}
	s := newTestStore(t, repo)

	_, err := s.NewWriter().Write(ctx, "films/wild", wildThings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))
	assert.True(t, errors.Is(err, storestatus.ErrConflict))
	assert.Len(t, txn.AbortCalls(), 1)
	assert.Empty(t, txn.AddDirectoryCalls())
	require.Len(t, txn.OpenFileCalls(), 1)
	assert.True(t, txn.OpenFileCalls()[0].Exists)

	// a failed abort is reported too
	txn.AbortFunc = func(context.Context) error { return errors.New("abort failed") }
	_, err = s.NewWriter().Write(ctx, "films/wild", wildThings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))
	assert.Contains(t, err.Error(), "abort failed")
}

type flakyRepository struct {
	*memory.Repository
	mu       sync.Mutex
	failures int
}

func (r *flakyRepository) BeginCommit(ctx context.Context, message string) (store.Transaction, error) {
	r.mu.Lock()
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return nil, errors.New("connection refused")
	}
	r.mu.Unlock()
	return r.Repository.BeginCommit(ctx, message)
}

func TestWriteReleasesLock(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepository{Repository: memory.New(t.Name()), failures: 1}
	s := newTestStore(t, repo)
	w := s.NewWriter()

	_, err := w.Write(ctx, "films/wild", wildThings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))

	done := make(chan error, 1)
	go func() {
		_, err := w.Write(ctx, "films/wild", wildThings())
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("the commit lock was not released after a failed write")
	}
}

func TestConcurrentWriters(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	const writers = 16
	ctx := context.Background()
	s := newTestStore(t, nil)

	var (
		mu   sync.Mutex
		revs = make([]model.Revision, 0, writers)
	)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < writers; i++ {
		path := "films/" + rand.Path(2)
		g.Go(func() error {
			m := wildThings()
			m.Year = 2000 + rand.Intn(20)
			rev, err := s.NewWriter().Write(gctx, path, m)
			if err != nil {
				return err
			}
			mu.Lock()
			revs = append(revs, rev)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sort.Slice(revs, func(i, j int) bool { return revs[i] < revs[j] })
	for i, rev := range revs {
		assert.Equal(t, model.Revision(i+1), rev)
	}
}

func TestEmptyBody(t *testing.T) {
	type note struct {
		Text   string
		Author string
	}
	ctx := context.Background()
	s := newTestStore(t, nil)
	_, err := s.Register(schema.Declare[note](1,
		schema.Constructor(func() *note { return &note{Text: "(empty)"} }),
		schema.Body("GetText", func(n *note) string { return n.Text }, func(n *note, v string) { n.Text = v }),
		schema.Field("GetAuthor", func(n *note) string { return n.Author }, func(n *note, v string) { n.Author = v }),
	))
	require.NoError(t, err)

	w := s.NewWriter()
	rev1, err := w.Write(ctx, "notes/n1", note{Text: "remember the milk", Author: "max"})
	require.NoError(t, err)
	_, err = w.Write(ctx, "notes/n1", note{Author: "max"})
	require.NoError(t, err)

	content, props, err := s.Repository().GetFile(ctx, "notes/n1", model.Head)
	require.NoError(t, err)
	assert.Empty(t, content, "an empty body replaces the former content")
	assert.Equal(t, "text", props[model.ClassBodyProperty].String())

	r := s.NewReader()
	got, err := Read[note](ctx, r, "notes/n1", model.Head)
	require.NoError(t, err)
	assert.Equal(t, "", got.Text, "an empty body is read back as written")
	assert.Equal(t, "max", got.Author)

	got, err = Read[note](ctx, r, "notes/n1", rev1)
	require.NoError(t, err)
	assert.Equal(t, "remember the milk", got.Text)

	// empty content stored without a body leaves the constructed default
	storetest.WriteFile(t, s.Repository(), "notes/n2", nil, model.Properties{
		model.FieldProperty("author"): model.StringValue("carol"),
	})
	got, err = Read[note](ctx, r, "notes/n2", model.Head)
	require.NoError(t, err)
	assert.Equal(t, "(empty)", got.Text)
	assert.Equal(t, "carol", got.Author)
}
