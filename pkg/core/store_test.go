package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/dlogger"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store/mockstore"
	storestatus "github.com/oneconcern/verstore/pkg/store/status"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()
	l := dlogger.TestLogger()

	for _, url := range []string{
		"mem://open-repository",
		"badger+mem://",
		"badger://" + filepath.Join(t.TempDir(), "repo"),
	} {
		repo, err := OpenRepository(ctx, url, l)
		require.NoErrorf(t, err, "url %q", url)

		info, err := repo.Info(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.InitialRevision, info.Head)
		assert.NotEmpty(t, info.UUID)
		require.NoError(t, repo.Close())
	}

	for _, url := range []string{"", "mem://", "badger://", "s3://bucket/repo", "file:///tmp"} {
		_, err := OpenRepository(ctx, url, l)
		require.Errorf(t, err, "url %q", url)
		assert.Truef(t, errors.Is(err, storestatus.ErrUnsupportedURL), "url %q", url)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := OpenRepository(cancelled, "mem://cancelled", l)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))
}

func TestOpenNamedShared(t *testing.T) {
	ctx := context.Background()

	s1, err := Open(ctx, "mem://shared-store", Logger(dlogger.TestLogger()))
	require.NoError(t, err)
	registerGenre(t, s1.Codecs())
	_, err = s1.Register(movieDeclaration())
	require.NoError(t, err)

	rev, err := s1.NewWriter().Write(ctx, "films/wild", wildThings())
	require.NoError(t, err)

	s2 := newTestStore(t, s1.Repository())
	info, err := s2.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, rev, info.Head)

	got, err := Read[movie](ctx, s2.NewReader(), "films/wild", model.Head)
	require.NoError(t, err)
	assert.Equal(t, wildThings().Title, got.Title)
}

func TestNewStoreFailures(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))

	repo := &mockstore.RepositoryMock{
		InfoFunc: func(context.Context) (model.RepositoryInfo, error) {
			return model.RepositoryInfo{}, errors.New("authentication required")
		},
		StringFunc: func() string { return "mock://" },
	}
	_, err = New(repo, Logger(dlogger.TestLogger()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))
	assert.Contains(t, err.Error(), "authentication required")
	assert.Len(t, repo.InfoCalls(), 1)
}

func TestStoreLog(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil, CommitMessage("catalog update"))
	w := s.NewWriter()

	rev1, err := w.Write(ctx, "films/wild", wildThings())
	require.NoError(t, err)
	rev2, err := w.Write(ctx, "films/wild", wildThings(), Message("fix synopsis"))
	require.NoError(t, err)
	assert.Equal(t, rev1+1, rev2)

	info, err := s.Log(ctx, rev1)
	require.NoError(t, err)
	assert.Equal(t, "catalog update", info.Message)

	info, err = s.Log(ctx, model.Head)
	require.NoError(t, err)
	assert.Equal(t, rev2, info.Revision)
	assert.Equal(t, "fix synopsis", info.Message)

	_, err = s.Log(ctx, rev2+10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))
}

func TestStoreMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s := newTestStore(t, nil, WithMetrics(reg))
	require.NotNil(t, s.Metrics())

	_, err := s.NewWriter().Write(ctx, "films/wild", wildThings())
	require.NoError(t, err)
	_, err = s.NewWriter().Write(ctx, "films", wildThings())
	require.Error(t, err)

	r := s.NewReader()
	_, err = Read[movie](ctx, r, "films/wild", model.Head)
	require.NoError(t, err)
	_, err = Read[movie](ctx, r, "films/none", model.Head)
	require.Error(t, err)

	m := s.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Writes.WithLabelValues(outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Writes.WithLabelValues(status.ErrPathConflict.Error())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reads.WithLabelValues(outcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reads.WithLabelValues(status.ErrMissingObject.Error())))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Writes), "one series per outcome")

	// a second store on the same registerer shares the collectors
	other := newTestStore(t, nil, WithMetrics(reg))
	assert.Same(t, m.Writes, other.Metrics().Writes)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, outcomeOK, outcome(nil))
	assert.Equal(t, "codec error", outcome(status.ErrCodec.WrapMessage("decoding")))
	assert.Equal(t, "error", outcome(errors.New("unexpected")))
}

func TestStoreTracer(t *testing.T) {
	ctx := context.Background()
	tracer := mocktracer.New()
	s := newTestStore(t, nil, WithTracer(tracer))

	_, err := s.NewWriter().Write(ctx, "films/wild", wildThings())
	require.NoError(t, err)

	operations := make(map[string]int)
	for _, span := range tracer.FinishedSpans() {
		operations[span.OperationName]++
	}
	assert.Contains(t, operations, "store.Info")
	assert.Contains(t, operations, "store.BeginCommit")
	assert.Contains(t, operations, "store.Commit")
	assert.GreaterOrEqual(t, operations["store.CheckPath"], 2)
}
