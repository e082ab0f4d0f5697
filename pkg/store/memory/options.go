package memory

import "go.uber.org/zap"

// Option for the in-memory repository
type Option func(*Repository)

// Logger for the repository
func Logger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.l = l
		}
	}
}

// UUID sets the unique identifier of the repository. By default, a random UUID is generated.
func UUID(id string) Option {
	return func(r *Repository) {
		if id != "" {
			r.uuid = id
		}
	}
}
