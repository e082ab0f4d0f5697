package bdgr

import (
	"encoding/binary"

	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
)

var (
	metaPref = [5]byte{'m', 'e', 't', 'a', ':'}
	nodePref = [5]byte{'n', 'o', 'd', 'e', ':'}
	revPref  = [4]byte{'r', 'e', 'v', ':'}

	uuidKey = metaKey("uuid")
	headKey = metaKey("head")
)

const revisionSize = 8

func metaKey(key string) []byte {
	return append(metaPref[:], store.UnsafeStringToBytes(key)...)
}

// nodePrefix is the common prefix of all versions of the node at path
func nodePrefix(path string) []byte {
	k := make([]byte, 0, len(nodePref)+len(path)+1)
	k = append(k, nodePref[:]...)
	k = append(k, path...)
	return append(k, 0)
}

func nodeKey(path string, rev model.Revision) []byte {
	k := make([]byte, 0, len(nodePref)+len(path)+1+revisionSize)
	k = append(k, nodePrefix(path)...)
	return append(k, encodeRevision(rev)...)
}

func revKey(rev model.Revision) []byte {
	k := make([]byte, 0, len(revPref)+revisionSize)
	k = append(k, revPref[:]...)
	return append(k, encodeRevision(rev)...)
}

func encodeRevision(rev model.Revision) []byte {
	b := make([]byte, revisionSize)
	binary.BigEndian.PutUint64(b, uint64(rev))
	return b
}

func decodeRevision(b []byte) model.Revision {
	if len(b) != revisionSize {
		return model.InitialRevision
	}
	return model.Revision(binary.BigEndian.Uint64(b))
}
