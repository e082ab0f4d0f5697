package core

import (
	"context"
	"reflect"

	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/errors"
	"github.com/oneconcern/verstore/pkg/model"
	storestatus "github.com/oneconcern/verstore/pkg/store/status"
	"go.uber.org/zap"
)

// Reader rebuilds objects from the repository. Reads take no lock.
type Reader struct {
	s *Store
	l *zap.Logger
}

// Read the object of type t stored at some path and revision.
//
// It returns a pointer to a new instance of t.
func (r *Reader) Read(ctx context.Context, path string, rev model.Revision, t reflect.Type) (interface{}, error) {
	obj, err := r.read(ctx, path, rev, t)
	if err != nil {
		return nil, err
	}
	return obj.Interface(), nil
}

// Read the object of type T stored at some path and revision
func Read[T any](ctx context.Context, r *Reader, path string, rev model.Revision) (*T, error) {
	obj, err := r.read(ctx, path, rev, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return obj.Interface().(*T), nil
}

func (r *Reader) read(ctx context.Context, path string, rev model.Revision, t reflect.Type) (obj reflect.Value, err error) {
	defer func() {
		r.s.metrics.observeRead(err)
	}()

	p, err := model.CleanPath(path)
	if err != nil {
		return reflect.Value{}, err
	}
	content, props, err := r.s.repo.GetFile(ctx, p, rev)
	if err != nil {
		switch {
		case errors.Is(err, storestatus.ErrNotFound):
			return reflect.Value{}, status.ErrMissingObject.WrapMessage("%q at revision %v", p, rev).Wrap(err)
		case errors.Is(err, storestatus.ErrNotFile):
			return reflect.Value{}, status.ErrPathConflict.WrapMessage("%q at revision %v", p, rev).Wrap(err)
		}
		return reflect.Value{}, status.ErrStoreIO.WrapMessage("reading %q at revision %v", p, rev).Wrap(err)
	}
	typ, err := r.s.catalog.Lookup(t)
	if err != nil {
		return reflect.Value{}, err
	}

	if name := props[model.ClassNameProperty].String(); name != typ.Name {
		r.l.Warn("stored class name does not match the requested type",
			zap.String("path", p),
			zap.String("stored", name),
			zap.String("requested", typ.Name),
		)
	}
	r.l.Debug("reading object",
		zap.String("path", p),
		zap.Stringer("revision", rev),
		zap.String("stored_version", props[model.ClassVersionProperty].String()),
		zap.Int("version", typ.Version),
	)

	obj, err = typ.New()
	if err != nil {
		return reflect.Value{}, err
	}

	for _, m := range typ.Fields() {
		pv, ok := props[m.Property()]
		if !ok {
			continue
		}
		value, err := r.s.codecs.Decode(pv, m.Type)
		if err != nil {
			return reflect.Value{}, status.ErrCodec.WrapMessage("field %q of %q", m.FieldName, p).Wrap(err)
		}
		m.Set(obj, value)
	}

	_, hasBody := props[model.ClassBodyProperty]
	if body, ok := typ.Body(); ok && (hasBody || len(content) > 0) {
		value, err := r.s.codecs.Decode(model.PropertyValue{Data: content}, body.Type)
		if err != nil {
			return reflect.Value{}, status.ErrCodec.WrapMessage("content of %q", p).Wrap(err)
		}
		body.Set(obj, value)
	}
	return obj, nil
}
