// Package storetest provides a conformance suite for store.Repository implementations
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/oneconcern/verstore/pkg/errors"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
	"github.com/oneconcern/verstore/pkg/store/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Factory builds a new empty repository for some test. The suite closes it.
type Factory func(t testing.TB) store.Repository

// Run the conformance suite against the repositories built by a factory
func Run(t *testing.T, factory Factory) {
	for _, toPin := range []struct {
		name string
		test func(*testing.T, store.Repository)
	}{
		{name: "initial revision", test: testInitial},
		{name: "commit file", test: testCommitFile},
		{name: "carry over", test: testCarryOver},
		{name: "checksum", test: testChecksum},
		{name: "tree structure", test: testTreeStructure},
		{name: "abort", test: testAbort},
		{name: "open file at commit", test: testOpenFileAtCommit},
		{name: "conflict", test: testConflict},
		{name: "concurrent commits", test: testConcurrentCommits},
		{name: "close", test: testClose},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			repo := factory(t)
			defer func() { _ = repo.Close() }()
			testcase.test(t, repo)
		})
	}
}

// WriteFile commits a file with some content and properties, creating the missing parent directories
func WriteFile(t testing.TB, repo store.Repository, path string, content []byte, props model.Properties) model.CommitInfo {
	ctx := context.Background()
	txn, err := repo.BeginCommit(ctx, "write "+path)
	require.NoError(t, err)

	for _, dir := range model.Ancestors(path) {
		kind, err := repo.CheckPath(ctx, dir, model.Head)
		require.NoError(t, err)
		if kind == model.NodeNone {
			require.NoError(t, txn.AddDirectory(dir))
		}
	}
	kind, err := repo.CheckPath(ctx, path, model.Head)
	require.NoError(t, err)
	require.NoError(t, txn.OpenFile(path, kind == model.NodeFile))
	if content != nil {
		require.NoError(t, txn.WriteDelta(path, content))
	}
	for k, v := range props {
		require.NoError(t, txn.SetProperty(path, k, v))
	}
	checksum := ""
	if content != nil {
		checksum = store.Checksum(content)
	}
	require.NoError(t, txn.CloseFile(path, checksum))

	info, err := txn.Commit(ctx)
	require.NoError(t, err)
	return info
}

func requireKind(t testing.TB, err error, kind *errors.Error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
}

func testInitial(t *testing.T, repo store.Repository) {
	ctx := context.Background()

	info, err := repo.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.InitialRevision, info.Head)
	assert.NotEmpty(t, info.UUID)
	assert.Equal(t, repo.String(), info.Root)

	kind, err := repo.CheckPath(ctx, "a", model.Head)
	require.NoError(t, err)
	assert.Equal(t, model.NodeNone, kind)

	_, _, err = repo.GetFile(ctx, "a", model.Head)
	requireKind(t, err, status.ErrNotFound)

	_, _, err = repo.GetFile(ctx, "a", 1)
	requireKind(t, err, status.ErrNoSuchRevision)

	_, err = repo.CheckPath(ctx, "a/../b", model.Head)
	requireKind(t, err, model.ErrInvalidPath)

	commit, err := repo.Log(ctx, model.Head)
	require.NoError(t, err)
	assert.Equal(t, model.InitialRevision, commit.Revision)
}

func testCommitFile(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	content := []byte("Max, a wild and imaginative boy, is sent to bed without supper.")
	props := model.Properties{
		"class.name": model.StringValue("films.Movie"),
		"field.cast": model.BinaryValue([]byte{0x82, 0x61, 0x41, 0x61, 0x42}),
	}

	txn, err := repo.BeginCommit(ctx, "first movie")
	require.NoError(t, err)
	require.NotEmpty(t, txn.ID())
	require.NoError(t, txn.AddDirectory("movies"))
	require.NoError(t, txn.AddDirectory("movies/2009"))
	require.NoError(t, txn.OpenFile("movies/2009/wild-things", false))
	require.NoError(t, txn.WriteDelta("movies/2009/wild-things", content[:10]))
	require.NoError(t, txn.WriteDelta("movies/2009/wild-things", content[10:]))
	for k, v := range props {
		require.NoError(t, txn.SetProperty("movies/2009/wild-things", k, v))
	}
	require.NoError(t, txn.CloseFile("movies/2009/wild-things", store.Checksum(content)))

	info, err := txn.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Revision(1), info.Revision)
	assert.Equal(t, txn.ID(), info.TxnID)
	assert.Equal(t, "first movie", info.Message)
	assert.False(t, info.Timestamp.IsZero())

	logged, err := repo.Log(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, info.TxnID, logged.TxnID)
	assert.Equal(t, info.Message, logged.Message)

	for path, expected := range map[string]model.NodeKind{
		"movies":                  model.NodeDir,
		"movies/2009":             model.NodeDir,
		"/movies/2009/":           model.NodeDir,
		"movies/2009/wild-things": model.NodeFile,
		"movies/2010":             model.NodeNone,
	} {
		kind, err := repo.CheckPath(ctx, path, model.Head)
		require.NoError(t, err)
		assert.Equalf(t, expected, kind, "kind of %q", path)
	}

	kind, err := repo.CheckPath(ctx, "movies", model.InitialRevision)
	require.NoError(t, err)
	assert.Equal(t, model.NodeNone, kind, "former revisions are immutable")

	read, readProps, err := repo.GetFile(ctx, "movies/2009/wild-things", model.Head)
	require.NoError(t, err)
	assert.Equal(t, content, read)
	assert.Equal(t, props, readProps)
	assert.True(t, readProps["field.cast"].IsBinary())

	_, _, err = repo.GetFile(ctx, "movies/2009", model.Head)
	requireKind(t, err, status.ErrNotFile)

	head, err := repo.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Revision(1), head.Head)
}

func testCarryOver(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	first := WriteFile(t, repo, "a/file", []byte("first content"), model.Properties{
		"one": model.StringValue("1"),
		"two": model.StringValue("2"),
	})
	second := WriteFile(t, repo, "a/file", nil, model.Properties{
		"two":   model.StringValue("deux"),
		"three": model.StringValue("3"),
	})
	require.Greater(t, int64(second.Revision), int64(first.Revision))

	content, props, err := repo.GetFile(ctx, "a/file", model.Head)
	require.NoError(t, err)
	assert.Equal(t, []byte("first content"), content)
	assert.Equal(t, model.Properties{
		"one":   model.StringValue("1"),
		"two":   model.StringValue("deux"),
		"three": model.StringValue("3"),
	}, props)

	WriteFile(t, repo, "a/file", []byte("second"), nil)
	content, _, err = repo.GetFile(ctx, "a/file", model.Head)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), content)

	content, props, err = repo.GetFile(ctx, "a/file", first.Revision)
	require.NoError(t, err)
	assert.Equal(t, []byte("first content"), content)
	assert.Len(t, props, 2)
}

func testChecksum(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	txn, err := repo.BeginCommit(ctx, "bad checksum")
	require.NoError(t, err)
	require.NoError(t, txn.OpenFile("file", false))
	require.NoError(t, txn.WriteDelta("file", []byte("some content")))
	requireKind(t, txn.CloseFile("file", store.Checksum([]byte("other content"))), status.ErrChecksumMismatch)
	require.NoError(t, txn.Abort(ctx))

	info, err := repo.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.InitialRevision, info.Head)

	txn, err = repo.BeginCommit(ctx, "empty file")
	require.NoError(t, err)
	require.NoError(t, txn.OpenFile("file", false))
	require.NoError(t, txn.CloseFile("file", store.Checksum(nil)))
	_, err = txn.Commit(ctx)
	require.NoError(t, err)

	content, props, err := repo.GetFile(ctx, "file", model.Head)
	require.NoError(t, err)
	assert.Empty(t, content)
	assert.Empty(t, props)
}

func testTreeStructure(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	WriteFile(t, repo, "a/file", []byte("content"), nil)

	txn, err := repo.BeginCommit(ctx, "invalid edits")
	require.NoError(t, err)

	requireKind(t, txn.AddDirectory("a"), status.ErrExists)
	requireKind(t, txn.AddDirectory("b/c"), status.ErrNotFound)
	requireKind(t, txn.AddDirectory("a/file/c"), status.ErrNotDirectory)
	requireKind(t, txn.OpenFile("a/file", false), status.ErrExists)
	requireKind(t, txn.OpenFile("a/other", true), status.ErrNotFound)
	requireKind(t, txn.OpenFile("a", true), status.ErrNotFile)
	requireKind(t, txn.OpenFile("", false), model.ErrInvalidPath)
	requireKind(t, txn.WriteDelta("a/file", []byte("x")), status.ErrFileNotOpen)
	requireKind(t, txn.SetProperty("a/file", "k", model.StringValue("v")), status.ErrFileNotOpen)
	requireKind(t, txn.CloseFile("a/file", ""), status.ErrFileNotOpen)

	require.NoError(t, txn.AddDirectory("b"))
	require.NoError(t, txn.AddDirectory("b/c"))
	requireKind(t, txn.OpenFile("b/c", false), status.ErrExists)
	require.NoError(t, txn.OpenFile("b/c/file", false))
	requireKind(t, txn.OpenFile("b/c/file", false), status.ErrFileOpen)
	requireKind(t, txn.SetProperty("b/c/file", "", model.StringValue("v")), status.ErrInvalidProperty)
	require.NoError(t, txn.CloseFile("b/c/file", ""))

	info, err := txn.Commit(ctx)
	require.NoError(t, err)

	kind, err := repo.CheckPath(ctx, "b/c/file", info.Revision)
	require.NoError(t, err)
	assert.Equal(t, model.NodeFile, kind)
}

func testAbort(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	txn, err := repo.BeginCommit(ctx, "aborted")
	require.NoError(t, err)
	require.NoError(t, txn.OpenFile("file", false))
	require.NoError(t, txn.WriteDelta("file", []byte("content")))
	require.NoError(t, txn.CloseFile("file", ""))
	require.NoError(t, txn.Abort(ctx))

	_, err = txn.Commit(ctx)
	requireKind(t, err, status.ErrTxnClosed)
	requireKind(t, txn.AddDirectory("dir"), status.ErrTxnClosed)
	require.NoError(t, txn.Abort(ctx), "abort is idempotent")

	kind, err := repo.CheckPath(ctx, "file", model.Head)
	require.NoError(t, err)
	assert.Equal(t, model.NodeNone, kind)

	info, err := repo.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.InitialRevision, info.Head)
}

func testOpenFileAtCommit(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	txn, err := repo.BeginCommit(ctx, "file left open")
	require.NoError(t, err)
	require.NoError(t, txn.AddDirectory("dir"))
	require.NoError(t, txn.OpenFile("dir/file", false))

	_, err = txn.Commit(ctx)
	requireKind(t, err, status.ErrFileOpen)
	require.NoError(t, txn.Abort(ctx))

	kind, err := repo.CheckPath(ctx, "dir", model.Head)
	require.NoError(t, err)
	assert.Equal(t, model.NodeNone, kind, "no partial revision is published")
}

func testConflict(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	WriteFile(t, repo, "shared/file", []byte("v1"), nil)

	first, err := repo.BeginCommit(ctx, "first")
	require.NoError(t, err)
	second, err := repo.BeginCommit(ctx, "second")
	require.NoError(t, err)
	unrelated, err := repo.BeginCommit(ctx, "unrelated")
	require.NoError(t, err)

	for _, txn := range []store.Transaction{first, second} {
		require.NoError(t, txn.OpenFile("shared/file", true))
		require.NoError(t, txn.SetProperty("shared/file", "writer", model.StringValue(txn.ID())))
		require.NoError(t, txn.CloseFile("shared/file", ""))
	}
	require.NoError(t, unrelated.OpenFile("shared/other", false))
	require.NoError(t, unrelated.CloseFile("shared/other", ""))

	_, err = first.Commit(ctx)
	require.NoError(t, err)

	_, err = second.Commit(ctx)
	requireKind(t, err, status.ErrConflict)

	_, err = unrelated.Commit(ctx)
	require.NoError(t, err, "transactions touching distinct files do not conflict")

	_, props, err := repo.GetFile(ctx, "shared/file", model.Head)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), props["writer"].String())

	// concurrent additions of the same directory conflict
	left, err := repo.BeginCommit(ctx, "left")
	require.NoError(t, err)
	right, err := repo.BeginCommit(ctx, "right")
	require.NoError(t, err)
	require.NoError(t, left.AddDirectory("new"))
	require.NoError(t, right.AddDirectory("new"))
	_, err = left.Commit(ctx)
	require.NoError(t, err)
	_, err = right.Commit(ctx)
	requireKind(t, err, status.ErrConflict)
}

func testConcurrentCommits(t *testing.T, repo store.Repository) {
	const writers = 8
	ctx := context.Background()

	var (
		mu        sync.Mutex
		revisions = make(map[model.Revision]string, writers)
	)
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		path := fmt.Sprintf("file-%d", i)
		g.Go(func() error {
			txn, err := repo.BeginCommit(ctx, "concurrent "+path)
			if err != nil {
				return err
			}
			if err = txn.OpenFile(path, false); err != nil {
				return err
			}
			if err = txn.WriteDelta(path, []byte(path)); err != nil {
				return err
			}
			if err = txn.CloseFile(path, store.Checksum([]byte(path))); err != nil {
				return err
			}
			info, err := txn.Commit(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			revisions[info.Revision] = path
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Len(t, revisions, writers, "every commit yields a distinct revision")

	info, err := repo.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Revision(writers), info.Head)

	for rev, path := range revisions {
		content, _, err := repo.GetFile(ctx, path, rev)
		require.NoError(t, err)
		assert.Equal(t, []byte(path), content)
	}
}

func testClose(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.Close())

	_, err := repo.Info(ctx)
	requireKind(t, err, status.ErrRepositoryClosed)

	_, err = repo.BeginCommit(ctx, "closed")
	requireKind(t, err, status.ErrRepositoryClosed)

	_, _, err = repo.GetFile(ctx, "file", model.Head)
	requireKind(t, err, status.ErrRepositoryClosed)
}
