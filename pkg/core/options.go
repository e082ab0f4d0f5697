package core

import (
	"github.com/oneconcern/verstore/pkg/codec"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultCommitMessage is recorded with every revision, unless overridden
const DefaultCommitMessage = "Saving object"

// Option configures a Store
type Option func(*Store)

// Logger for the store and its repository
func Logger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.l = l
		}
	}
}

// Codecs shares a codec registry with the store. By default, each store gets its own.
func Codecs(r *codec.Registry) Option {
	return func(s *Store) {
		s.codecs = r
	}
}

// CommitMessage sets the default commit message for writes
func CommitMessage(message string) Option {
	return func(s *Store) {
		if message != "" {
			s.message = message
		}
	}
}

// WithMetrics registers the store metrics with a prometheus registerer
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Store) {
		s.registerer = reg
	}
}

// WithTracer traces every repository call with opentracing spans
func WithTracer(tr opentracing.Tracer) Option {
	return func(s *Store) {
		s.tracer = tr
	}
}

type writeOptions struct {
	message string
}

// WriteOption configures a single write
type WriteOption func(*writeOptions)

// Message sets the commit message of a write
func Message(message string) WriteOption {
	return func(o *writeOptions) {
		if message != "" {
			o.message = message
		}
	}
}
