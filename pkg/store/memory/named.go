package memory

import (
	"sync"
)

var named = struct {
	sync.Mutex
	repos map[string]*Repository
}{
	repos: make(map[string]*Repository),
}

// Named yields a process-wide in-memory repository, created on first use.
//
// Once closed, a named repository is replaced by a new empty one.
func Named(name string, opts ...Option) *Repository {
	named.Lock()
	defer named.Unlock()
	if r, ok := named.repos[name]; ok && !r.isClosed() {
		return r
	}
	r := New(name, opts...)
	named.repos[name] = r
	return r
}
