package bdgr

import (
	"github.com/dgraph-io/badger/v3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oneconcern/verstore/pkg/model"
	"github.com/oneconcern/verstore/pkg/store"
)

// DefaultCacheSize is the number of node lookups kept in cache
const DefaultCacheSize = 4096

type nodeCacheKey struct {
	path string
	rev  model.Revision
}

type cachedNode struct {
	node  store.Node
	found bool
}

// nodeCache holds node lookups by path and resolved revision.
// A committed revision never changes, so entries need no invalidation.
// Cached nodes are shared: callers must not mutate their content or properties.
type nodeCache struct {
	cache *lru.Cache[nodeCacheKey, cachedNode]
}

func newNodeCache(size int) (*nodeCache, error) {
	if size <= 0 {
		return &nodeCache{}, nil
	}
	cache, err := lru.New[nodeCacheKey, cachedNode](size)
	if err != nil {
		return nil, err
	}
	return &nodeCache{cache: cache}, nil
}

// readNode looks up a node at some resolved revision, through the cache
func (c *nodeCache) readNode(txn *badger.Txn, path string, rev model.Revision) (store.Node, bool, error) {
	if c.cache == nil {
		return readNode(txn, path, rev)
	}
	key := nodeCacheKey{path: path, rev: rev}
	if cached, ok := c.cache.Get(key); ok {
		return cached.node, cached.found, nil
	}
	node, found, err := readNode(txn, path, rev)
	if err != nil {
		return node, found, err
	}
	c.cache.Add(key, cachedNode{node: node, found: found})
	return node, found, nil
}

func (c *nodeCache) len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
