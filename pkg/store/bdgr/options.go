package bdgr

import "go.uber.org/zap"

// Option for the badger repository
type Option func(*Repository)

// Logger for the repository. Badger's own logs are routed to it at warning level and above.
func Logger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.l = l
		}
	}
}

// InMemory keeps the badger store in memory, ignoring the directory
func InMemory(enabled bool) Option {
	return func(r *Repository) {
		r.inMemory = enabled
	}
}

// UUID sets the unique identifier of a new repository. It is ignored when the repository exists already.
func UUID(id string) Option {
	return func(r *Repository) {
		if id != "" {
			r.uuid = id
		}
	}
}

// CacheSize sets how many node lookups are cached. Zero disables the cache.
func CacheSize(size int) Option {
	return func(r *Repository) {
		r.cacheSize = size
	}
}
