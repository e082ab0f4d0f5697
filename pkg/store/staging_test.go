package store

import (
	"testing"

	"github.com/oneconcern/verstore/pkg/errors"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshot struct {
	rev   model.Revision
	nodes map[string]Node
}

func (f fakeSnapshot) Revision() model.Revision { return f.rev }

func (f fakeSnapshot) Node(path string) (Node, bool, error) {
	if path == "" {
		return Node{Kind: model.NodeDir}, true, nil
	}
	n, ok := f.nodes[path]
	return n, ok, nil
}

func baseSnapshot() fakeSnapshot {
	return fakeSnapshot{
		rev: 3,
		nodes: map[string]Node{
			"movies": {Kind: model.NodeDir, Modified: 1},
			"movies/brazil": {
				Kind:       model.NodeFile,
				Content:    []byte("a daydreaming bureaucrat"),
				Properties: model.Properties{"field.year": model.StringValue("1985")},
				Modified:   3,
			},
		},
	}
}

func TestStagingChanges(t *testing.T) {
	s := NewStaging(baseSnapshot())
	assert.Equal(t, model.Revision(3), s.Base())

	require.NoError(t, s.AddDirectory("series"))
	require.NoError(t, s.OpenFile("series/dark", false))
	require.NoError(t, s.WriteDelta("series/dark", []byte("Winden, ")))
	require.NoError(t, s.WriteDelta("series/dark", []byte("2019")))
	require.NoError(t, s.SetProperty("series/dark", "field.seasons", model.StringValue("3")))
	require.NoError(t, s.CloseFile("series/dark", Checksum([]byte("Winden, 2019"))))

	require.NoError(t, s.OpenFile("movies/brazil", true))
	require.NoError(t, s.SetProperty("movies/brazil", "field.rating", model.StringValue("4.5")))
	require.NoError(t, s.CloseFile("movies/brazil", Checksum([]byte("a daydreaming bureaucrat"))))

	changes, err := s.Changes(4)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	assert.Equal(t, Change{Path: "series", Node: Node{Kind: model.NodeDir, Modified: 4}}, changes[0])
	assert.Equal(t, "series/dark", changes[1].Path)
	assert.Equal(t, []byte("Winden, 2019"), changes[1].Node.Content)
	assert.Equal(t, model.Revision(4), changes[1].Node.Modified)

	brazil := changes[2].Node
	assert.Equal(t, []byte("a daydreaming bureaucrat"), brazil.Content, "content carries over")
	assert.Equal(t, model.Properties{
		"field.year":   model.StringValue("1985"),
		"field.rating": model.StringValue("4.5"),
	}, brazil.Properties)

	assert.Equal(t, []string{"movies/brazil", "series", "series/dark"}, s.Touched())

	// the base snapshot is never mutated
	base, _, _ := baseSnapshot().Node("movies/brazil")
	assert.Len(t, base.Properties, 1)
}

func TestStagingClosed(t *testing.T) {
	s := NewStaging(baseSnapshot())
	require.False(t, s.Closed())
	s.Close()
	require.True(t, s.Closed())

	for _, err := range []error{
		s.AddDirectory("a"),
		s.OpenFile("a", false),
		s.WriteDelta("a", nil),
		s.SetProperty("a", "k", model.StringValue("v")),
		s.CloseFile("a", ""),
	} {
		assert.True(t, errors.Is(err, status.ErrTxnClosed))
	}
	_, err := s.Changes(4)
	assert.True(t, errors.Is(err, status.ErrTxnClosed))
}

func TestStagingReopen(t *testing.T) {
	s := NewStaging(baseSnapshot())
	require.NoError(t, s.OpenFile("movies/new", false))
	require.NoError(t, s.WriteDelta("movies/new", []byte("first")))
	require.NoError(t, s.CloseFile("movies/new", ""))

	assert.True(t, errors.Is(s.OpenFile("movies/new", false), status.ErrExists))
	require.NoError(t, s.OpenFile("movies/new", true))
	require.NoError(t, s.WriteDelta("movies/new", []byte("second")))
	require.NoError(t, s.CloseFile("movies/new", Checksum([]byte("second"))))

	changes, err := s.Changes(4)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, []byte("second"), changes[0].Node.Content)
}

func TestStagingValidate(t *testing.T) {
	base := baseSnapshot()

	unchanged := NewStaging(base)
	require.NoError(t, unchanged.OpenFile("movies/brazil", true))
	require.NoError(t, unchanged.CloseFile("movies/brazil", ""))
	require.NoError(t, unchanged.Validate(base))

	head := baseSnapshot()
	head.rev = 4
	head.nodes["movies/other"] = Node{Kind: model.NodeFile, Modified: 4}
	require.NoError(t, unchanged.Validate(head), "unrelated changes do not conflict")

	head.nodes["movies/brazil"] = Node{Kind: model.NodeFile, Modified: 4}
	err := unchanged.Validate(head)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrConflict))

	added := NewStaging(base)
	require.NoError(t, added.AddDirectory("series"))
	head.nodes["series"] = Node{Kind: model.NodeDir, Modified: 4}
	assert.True(t, errors.Is(added.Validate(head), status.ErrConflict))
}

func TestChecksum(t *testing.T) {
	content := []byte("Where the wild things are")
	c := NewChecksummer()
	_, _ = c.Write(content[:5])
	_, _ = c.Write(content[5:])
	assert.Equal(t, Checksum(content), c.Sum())
	assert.Len(t, Checksum(nil), 64)
	assert.NotEqual(t, Checksum(nil), Checksum(content))
}

func TestUnsafeConversions(t *testing.T) {
	assert.Equal(t, []byte("key"), UnsafeStringToBytes("key"))
	assert.Nil(t, UnsafeStringToBytes(""))
	assert.Equal(t, "key", UnsafeBytesToString([]byte("key")))
	assert.Equal(t, "", UnsafeBytesToString(nil))
}
