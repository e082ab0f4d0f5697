package core

import (
	"context"

	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
)

// PlanDirectories lists the parent directories of a file path missing at HEAD, shallowest first.
//
// An existing parent which is a file fails with status.ErrPathConflict.
func PlanDirectories(ctx context.Context, repo store.Repository, path string) ([]string, error) {
	p, err := model.CleanPath(path)
	if err != nil {
		return nil, err
	}
	ancestors := model.Ancestors(p)
	missing := make([]string, 0, len(ancestors))

	for _, dir := range ancestors {
		if len(missing) > 0 {
			// below a missing directory, everything is missing
			missing = append(missing, dir)
			continue
		}
		kind, err := repo.CheckPath(ctx, dir, model.Head)
		if err != nil {
			return nil, status.ErrStoreIO.WrapMessage("checking %q", dir).Wrap(err)
		}
		switch kind {
		case model.NodeDir:
		case model.NodeNone:
			missing = append(missing, dir)
		default:
			return nil, status.ErrPathConflict.WrapMessage("%q is a %v, a directory is required to store %q", dir, kind, p)
		}
	}
	return missing, nil
}
