package core

import (
	"context"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/oneconcern/verstore/pkg/core/status"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/schema"
	"github.com/oneconcern/verstore/pkg/store"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DeltaWindowSize is the size of the content windows streamed to the repository
const DeltaWindowSize = 100 * 1024

// Writer saves objects to the repository
type Writer struct {
	s *Store
	l *zap.Logger
}

type encodedObject struct {
	typ      *schema.Type
	fields   []encodedField
	body     []byte
	bodyName string
	hasBody  bool
}

type encodedField struct {
	property string
	value    model.PropertyValue
}

// Write an object at some path, as a new revision.
//
// Parent directories are created as needed. An existing file at this path is updated:
// properties and content which are not rewritten carry over from the former revision.
// Members with a nil value are not written.
func (w *Writer) Write(ctx context.Context, path string, obj interface{}, opts ...WriteOption) (rev model.Revision, err error) {
	var bodySize int
	start := time.Now()
	defer func() {
		w.s.metrics.observeWrite(start, bodySize, err)
	}()

	o := writeOptions{message: w.s.message}
	for _, apply := range opts {
		apply(&o)
	}

	p, err := model.CleanPath(path)
	if err != nil {
		return model.InitialRevision, err
	}
	encoded, err := w.encode(obj)
	if err != nil {
		return model.InitialRevision, err
	}
	bodySize = len(encoded.body)

	w.s.commitLock.Lock()
	defer w.s.commitLock.Unlock()

	info, err := w.commit(ctx, p, encoded, o.message)
	if err != nil {
		return model.InitialRevision, err
	}

	w.l.Info("saved object",
		zap.String("path", p),
		zap.String("type", encoded.typ.Name),
		zap.Stringer("revision", info.Revision),
		zap.String("txn", info.TxnID),
	)
	return info.Revision, nil
}

// encode all members of an object, before any interaction with the repository
func (w *Writer) encode(obj interface{}) (encodedObject, error) {
	if obj == nil {
		return encodedObject{}, status.ErrNotStorable.WrapMessage("cannot write a nil object")
	}
	v := reflect.ValueOf(obj)
	typ, err := w.s.catalog.Lookup(v.Type())
	if err != nil {
		return encodedObject{}, err
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return encodedObject{}, status.ErrNotStorable.WrapMessage("cannot write a nil %v", v.Type())
		}
	} else {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr
	}

	encoded := encodedObject{typ: typ}
	for _, m := range typ.Members {
		value, present := m.Value(v)
		if !present {
			continue
		}
		pv, strategy, err := w.s.codecs.Encode(value)
		if err != nil {
			return encodedObject{}, err
		}
		w.l.Debug("encoded member",
			zap.String("field", m.FieldName),
			zap.Stringer("role", m.Role),
			zap.Stringer("strategy", strategy),
		)
		if m.Role == schema.RoleBody {
			encoded.body = pv.Bytes()
			encoded.bodyName = m.FieldName
			encoded.hasBody = true
			continue
		}
		encoded.fields = append(encoded.fields, encodedField{property: m.Property(), value: pv})
	}
	sort.Slice(encoded.fields, func(i, j int) bool {
		return encoded.fields[i].property < encoded.fields[j].property
	})
	return encoded, nil
}

// commit an encoded object. The commit lock must be held.
func (w *Writer) commit(ctx context.Context, path string, encoded encodedObject, message string) (model.CommitInfo, error) {
	repo := w.s.repo

	dirs, err := PlanDirectories(ctx, repo, path)
	if err != nil {
		return model.CommitInfo{}, err
	}
	kind, err := repo.CheckPath(ctx, path, model.Head)
	if err != nil {
		return model.CommitInfo{}, status.ErrStoreIO.WrapMessage("checking %q", path).Wrap(err)
	}
	if kind == model.NodeDir {
		return model.CommitInfo{}, status.ErrPathConflict.WrapMessage("%q is a directory", path)
	}

	txn, err := repo.BeginCommit(ctx, message)
	if err != nil {
		return model.CommitInfo{}, status.ErrStoreIO.WrapMessage("begin commit").Wrap(err)
	}

	info, err := w.edit(ctx, txn, path, kind == model.NodeFile, dirs, encoded)
	if err != nil {
		if abortErr := txn.Abort(ctx); abortErr != nil {
			err = multierr.Append(err, abortErr)
		}
		return model.CommitInfo{}, status.ErrStoreIO.WrapWithLog(w.l, err,
			zap.String("path", path),
			zap.String("txn", txn.ID()),
		)
	}
	return info, nil
}

func (w *Writer) edit(ctx context.Context, txn store.Transaction, path string, exists bool, dirs []string, encoded encodedObject) (model.CommitInfo, error) {
	for _, dir := range dirs {
		if err := txn.AddDirectory(dir); err != nil {
			return model.CommitInfo{}, err
		}
	}
	if err := txn.OpenFile(path, exists); err != nil {
		return model.CommitInfo{}, err
	}

	var checksum string
	if encoded.hasBody {
		var err error
		checksum, err = writeBody(txn, path, encoded.body)
		if err != nil {
			return model.CommitInfo{}, err
		}
	}

	if err := txn.SetProperty(path, model.ClassVersionProperty, model.StringValue(strconv.Itoa(encoded.typ.Version))); err != nil {
		return model.CommitInfo{}, err
	}
	if err := txn.SetProperty(path, model.ClassNameProperty, model.StringValue(encoded.typ.Name)); err != nil {
		return model.CommitInfo{}, err
	}
	if encoded.hasBody {
		if err := txn.SetProperty(path, model.ClassBodyProperty, model.StringValue(encoded.bodyName)); err != nil {
			return model.CommitInfo{}, err
		}
	}
	for _, field := range encoded.fields {
		if err := txn.SetProperty(path, field.property, field.value); err != nil {
			return model.CommitInfo{}, err
		}
	}

	if err := txn.CloseFile(path, checksum); err != nil {
		return model.CommitInfo{}, err
	}
	return txn.Commit(ctx)
}

// writeBody streams the content as delta windows, and yields its checksum
func writeBody(txn store.Transaction, path string, body []byte) (string, error) {
	checksum := store.NewChecksummer()
	if len(body) == 0 {
		// an empty body still replaces the former content
		return checksum.Sum(), txn.WriteDelta(path, []byte{})
	}
	for offset := 0; offset < len(body); offset += DeltaWindowSize {
		window := body[offset:min(offset+DeltaWindowSize, len(body))]
		if err := txn.WriteDelta(path, window); err != nil {
			return "", err
		}
		_, _ = checksum.Write(window)
	}
	return checksum.Sum(), nil
}
