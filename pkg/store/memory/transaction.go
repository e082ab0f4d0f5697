package memory

import (
	"context"

	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
	"github.com/oneconcern/verstore/pkg/store/status"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

var _ store.Transaction = &transaction{}

type transaction struct {
	*store.Staging
	repo    *Repository
	id      string
	message string
}

func newTransaction(repo *Repository, base snapshot, message string) *transaction {
	t := &transaction{
		Staging: store.NewStaging(base),
		repo:    repo,
		id:      ksuid.New().String(),
		message: message,
	}
	repo.l.Debug("begin commit", zap.String("txn", t.id), zap.Int64("base", int64(base.Revision())))
	return t
}

func (t *transaction) ID() string {
	return t.id
}

func (t *transaction) Commit(_ context.Context) (model.CommitInfo, error) {
	if t.Closed() {
		return model.CommitInfo{}, status.ErrTxnClosed
	}
	defer t.Staging.Close()
	return t.repo.commit(t.Staging, t.id, t.message)
}

func (t *transaction) Abort(_ context.Context) error {
	if !t.Closed() {
		t.repo.l.Debug("abort commit", zap.String("txn", t.id))
	}
	t.Staging.Close()
	return nil
}
