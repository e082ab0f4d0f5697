package core

import (
	"context"
	"errors"
	"testing"

	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store/memory"
	"github.com/oneconcern/verstore/pkg/store/mockstore"
	"github.com/oneconcern/verstore/pkg/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDirectories(t *testing.T) {
	ctx := context.Background()
	repo := memory.New("plan")

	planned, err := PlanDirectories(ctx, repo, "a/b/c/file")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a/b", "a/b/c"}, planned)

	planned, err = PlanDirectories(ctx, repo, "a/b/file")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a/b"}, planned)

	planned, err = PlanDirectories(ctx, repo, "file")
	require.NoError(t, err)
	assert.Empty(t, planned)

	storetest.WriteFile(t, repo, "a/x", []byte("content"), nil)

	planned, err = PlanDirectories(ctx, repo, "/a/b/c/file")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "a/b/c"}, planned, "existing directories are skipped")

	_, err = PlanDirectories(ctx, repo, "a/x/y/file")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrPathConflict))

	_, err = PlanDirectories(ctx, repo, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidPath))
}

func TestPlanDirectoriesStoreFailure(t *testing.T) {
	repo := &mockstore.RepositoryMock{
		CheckPathFunc: func(_ context.Context, path string, _ model.Revision) (model.NodeKind, error) {
			if path == "a" {
				return model.NodeDir, nil
			}
			return model.NodeNone, errors.New("connection reset")
		},
	}

	_, err := PlanDirectories(context.Background(), repo, "a/b/c/file")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStoreIO))

	calls := repo.CheckPathCalls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.Equal(t, model.Head, call.Rev)
	}
}
