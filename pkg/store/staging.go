package store

import (
	"sort"

	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store/status"
)

type stagedFile struct {
	node     Node
	written  bool
	closed   bool
	checksum *Checksummer
}

// Staging validates the edits of a transaction against the revision it is based on,
// and accumulates the resulting changes.
//
// Staging is not safe for concurrent use: a transaction belongs to a single writer.
type Staging struct {
	base  Snapshot
	dirs  map[string]struct{}
	files map[string]*stagedFile
	order []string
	done  bool
}

// NewStaging prepares edits based on a committed revision
func NewStaging(base Snapshot) *Staging {
	return &Staging{
		base:  base,
		dirs:  make(map[string]struct{}),
		files: make(map[string]*stagedFile),
	}
}

// Base revision of the staged edits
func (s *Staging) Base() model.Revision {
	return s.base.Revision()
}

func (s *Staging) lookup(path string) (model.NodeKind, error) {
	if path == "" {
		return model.NodeDir, nil
	}
	if _, ok := s.dirs[path]; ok {
		return model.NodeDir, nil
	}
	if _, ok := s.files[path]; ok {
		return model.NodeFile, nil
	}
	node, found, err := s.base.Node(path)
	if err != nil {
		return model.NodeNone, err
	}
	if !found {
		return model.NodeNone, nil
	}
	return node.Kind, nil
}

func (s *Staging) checkParent(path string) error {
	parent := model.Parent(path)
	kind, err := s.lookup(parent)
	if err != nil {
		return err
	}
	switch kind {
	case model.NodeDir:
		return nil
	case model.NodeNone:
		return status.ErrNotFound.WrapMessage("parent directory %q", parent)
	default:
		return status.ErrNotDirectory.WrapMessage("parent %q", parent)
	}
}

func (s *Staging) prepare(path string) (string, error) {
	if s.done {
		return "", status.ErrTxnClosed
	}
	return model.CleanPath(path)
}

// AddDirectory stages a new directory. Its parent must be a directory.
func (s *Staging) AddDirectory(path string) error {
	p, err := s.prepare(path)
	if err != nil {
		return err
	}
	if err = s.checkParent(p); err != nil {
		return err
	}
	kind, err := s.lookup(p)
	if err != nil {
		return err
	}
	if kind != model.NodeNone {
		return status.ErrExists.WrapMessage("cannot add directory %q", p)
	}
	s.dirs[p] = struct{}{}
	s.order = append(s.order, p)
	return nil
}

// OpenFile stages an edition of an existing file, or the addition of a new one
func (s *Staging) OpenFile(path string, exists bool) error {
	p, err := s.prepare(path)
	if err != nil {
		return err
	}
	if f, ok := s.files[p]; ok {
		if !f.closed {
			return status.ErrFileOpen.WrapMessage("%q", p)
		}
		if !exists {
			return status.ErrExists.WrapMessage("cannot add file %q", p)
		}
		f.closed = false
		f.written = false
		return nil
	}

	if err = s.checkParent(p); err != nil {
		return err
	}
	node, found, err := s.base.Node(p)
	if err != nil {
		return err
	}
	if _, staged := s.dirs[p]; staged {
		found, node.Kind = true, model.NodeDir
	}

	switch {
	case exists && !found:
		return status.ErrNotFound.WrapMessage("cannot open file %q", p)
	case exists && node.Kind != model.NodeFile:
		return status.ErrNotFile.WrapMessage("cannot open %q", p)
	case !exists && found:
		return status.ErrExists.WrapMessage("cannot add file %q", p)
	}

	staged := &stagedFile{node: Node{Kind: model.NodeFile}}
	if exists {
		staged.node.Content = node.Content
		staged.node.Properties = node.Properties.Clone()
	} else {
		staged.node.Properties = make(model.Properties)
	}
	s.files[p] = staged
	s.order = append(s.order, p)
	return nil
}

func (s *Staging) openFile(path string) (*stagedFile, string, error) {
	p, err := s.prepare(path)
	if err != nil {
		return nil, "", err
	}
	f, ok := s.files[p]
	if !ok || f.closed {
		return nil, p, status.ErrFileNotOpen.WrapMessage("%q", p)
	}
	return f, p, nil
}

// WriteDelta appends a window of content to an open file.
// The first window replaces the former content of the file.
func (s *Staging) WriteDelta(path string, window []byte) error {
	f, _, err := s.openFile(path)
	if err != nil {
		return err
	}
	if !f.written {
		f.written = true
		f.node.Content = make([]byte, 0, len(window))
		f.checksum = NewChecksummer()
	}
	f.node.Content = append(f.node.Content, window...)
	_, _ = f.checksum.Write(window)
	return nil
}

// SetProperty on an open file
func (s *Staging) SetProperty(path, key string, value model.PropertyValue) error {
	f, _, err := s.openFile(path)
	if err != nil {
		return err
	}
	if key == "" {
		return status.ErrInvalidProperty.WrapMessage("empty property name on %q", path)
	}
	f.node.Properties[key] = value
	return nil
}

// CloseFile closes an open file, verifying the checksum of the content written since it was opened.
//
// An empty checksum skips the verification.
func (s *Staging) CloseFile(path, checksum string) error {
	f, p, err := s.openFile(path)
	if err != nil {
		return err
	}
	if checksum != "" {
		var actual string
		if f.written {
			actual = f.checksum.Sum()
		} else {
			actual = Checksum(f.node.Content)
		}
		if actual != checksum {
			return status.ErrChecksumMismatch.WrapMessage("%q: expected %s, got %s", p, checksum, actual)
		}
	}
	f.closed = true
	return nil
}

// Changes staged so far, in the order paths were first touched.
//
// All files must be closed. Nodes are stamped with the revision to be created.
func (s *Staging) Changes(rev model.Revision) ([]Change, error) {
	if s.done {
		return nil, status.ErrTxnClosed
	}
	changes := make([]Change, 0, len(s.order))
	for _, p := range s.order {
		if _, isDir := s.dirs[p]; isDir {
			changes = append(changes, Change{Path: p, Node: Node{Kind: model.NodeDir, Modified: rev}})
			continue
		}
		f := s.files[p]
		if !f.closed {
			return nil, status.ErrFileOpen.WrapMessage("%q must be closed before commit", p)
		}
		node := f.node
		node.Properties = f.node.Properties.Clone()
		node.Modified = rev
		changes = append(changes, Change{Path: p, Node: node})
	}
	return changes, nil
}

// Touched yields the staged paths, sorted
func (s *Staging) Touched() []string {
	touched := make([]string, len(s.order))
	copy(touched, s.order)
	sort.Strings(touched)
	return touched
}

// Validate that no path touched by the staged edits changed between the base revision and head.
//
// A mismatch is reported as status.ErrConflict: the transaction is out of date.
func (s *Staging) Validate(head Snapshot) error {
	if head.Revision() == s.base.Revision() {
		return nil
	}
	for _, p := range s.order {
		for _, checked := range append(model.Ancestors(p), p) {
			before, foundBefore, err := s.base.Node(checked)
			if err != nil {
				return err
			}
			after, foundAfter, err := head.Node(checked)
			if err != nil {
				return err
			}
			if foundBefore != foundAfter || before.Kind != after.Kind || before.Modified != after.Modified {
				return status.ErrConflict.WrapMessage("%q changed after revision %v", checked, s.base.Revision())
			}
		}
	}
	return nil
}

// Close the staging area. Any further edit fails with status.ErrTxnClosed.
func (s *Staging) Close() {
	s.done = true
}

// Closed tells if the staging area is closed
func (s *Staging) Closed() bool {
	return s.done
}
