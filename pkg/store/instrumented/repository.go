// Package instrumented decorates a store.Repository with tracing spans and debug logs
package instrumented

import (
	"context"
	"strings"

	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// New instrumented repository. A nil tracer stands for the global tracer.
func New(tr opentracing.Tracer, l *zap.Logger, repo store.Repository) store.Repository {
	if tr == nil {
		tr = opentracing.GlobalTracer()
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &instrumentedRepository{
		tr:   tr,
		l:    l.With(zap.String("repository", repo.String())),
		repo: repo,
	}
}

type instrumentedRepository struct {
	tr   opentracing.Tracer
	l    *zap.Logger
	repo store.Repository
}

func (i *instrumentedRepository) String() string { return i.repo.String() }
func (i *instrumentedRepository) Close() error   { return i.repo.Close() }

func (i *instrumentedRepository) opName(name string) string {
	return strings.Join([]string{"store", name}, ".")
}

func (i *instrumentedRepository) Info(ctx context.Context) (info model.RepositoryInfo, err error) {
	traced(ctx, i.tr, i.opName("Info"), func(ctx context.Context) { info, err = i.repo.Info(ctx) })
	i.l.Debug("store info", zap.Error(err))
	return
}

func (i *instrumentedRepository) Log(ctx context.Context, rev model.Revision) (info model.CommitInfo, err error) {
	traced(ctx, i.tr, i.opName("Log"), func(ctx context.Context) { info, err = i.repo.Log(ctx, rev) })
	i.l.Debug("store log", zap.Stringer("revision", rev), zap.Error(err))
	return
}

func (i *instrumentedRepository) CheckPath(ctx context.Context, path string, rev model.Revision) (kind model.NodeKind, err error) {
	traced(ctx, i.tr, i.opName("CheckPath"), func(ctx context.Context) { kind, err = i.repo.CheckPath(ctx, path, rev) })
	i.l.Debug("store check path", zap.String("path", path), zap.Stringer("revision", rev), zap.Stringer("kind", kind), zap.Error(err))
	return
}

func (i *instrumentedRepository) GetFile(ctx context.Context, path string, rev model.Revision) (content []byte, props model.Properties, err error) {
	traced(ctx, i.tr, i.opName("GetFile"), func(ctx context.Context) { content, props, err = i.repo.GetFile(ctx, path, rev) })
	i.l.Debug("store get file", zap.String("path", path), zap.Stringer("revision", rev), zap.Int("size", len(content)), zap.Error(err))
	return
}

func (i *instrumentedRepository) BeginCommit(ctx context.Context, message string) (store.Transaction, error) {
	var (
		txn store.Transaction
		err error
	)
	traced(ctx, i.tr, i.opName("BeginCommit"), func(ctx context.Context) { txn, err = i.repo.BeginCommit(ctx, message) })
	if err != nil {
		i.l.Debug("store begin commit", zap.Error(err))
		return nil, err
	}
	i.l.Debug("store begin commit", zap.String("txn", txn.ID()))
	return &instrumentedTransaction{
		tr:  i.tr,
		l:   i.l.With(zap.String("txn", txn.ID())),
		txn: txn,
	}, nil
}

type instrumentedTransaction struct {
	tr  opentracing.Tracer
	l   *zap.Logger
	txn store.Transaction
}

func (i *instrumentedTransaction) ID() string { return i.txn.ID() }

func (i *instrumentedTransaction) AddDirectory(path string) error {
	err := i.txn.AddDirectory(path)
	i.l.Debug("add directory", zap.String("path", path), zap.Error(err))
	return err
}

func (i *instrumentedTransaction) OpenFile(path string, exists bool) error {
	err := i.txn.OpenFile(path, exists)
	i.l.Debug("open file", zap.String("path", path), zap.Bool("exists", exists), zap.Error(err))
	return err
}

func (i *instrumentedTransaction) WriteDelta(path string, window []byte) error {
	return i.txn.WriteDelta(path, window)
}

func (i *instrumentedTransaction) SetProperty(path, key string, value model.PropertyValue) error {
	err := i.txn.SetProperty(path, key, value)
	i.l.Debug("set property", zap.String("path", path), zap.String("key", key), zap.Bool("binary", value.IsBinary()), zap.Error(err))
	return err
}

func (i *instrumentedTransaction) CloseFile(path, checksum string) error {
	err := i.txn.CloseFile(path, checksum)
	i.l.Debug("close file", zap.String("path", path), zap.String("checksum", checksum), zap.Error(err))
	return err
}

func (i *instrumentedTransaction) Commit(ctx context.Context) (info model.CommitInfo, err error) {
	traced(ctx, i.tr, "store.Commit", func(ctx context.Context) { info, err = i.txn.Commit(ctx) })
	i.l.Debug("commit", zap.Stringer("revision", info.Revision), zap.Error(err))
	return
}

func (i *instrumentedTransaction) Abort(ctx context.Context) (err error) {
	traced(ctx, i.tr, "store.Abort", func(ctx context.Context) { err = i.txn.Abort(ctx) })
	i.l.Debug("abort", zap.Error(err))
	return
}

func traced(ctx context.Context, tr opentracing.Tracer, name string, action func(context.Context)) {
	parent := opentracing.SpanFromContext(ctx)
	var opts []opentracing.StartSpanOption
	if parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	span := tr.StartSpan(name, opts...)
	defer span.Finish()
	action(opentracing.ContextWithSpan(ctx, span))
}
