package storage

import (
	"log/slog"
	"time"

	"github.com/wizardpacs/adminkit/pkg/logger"
)

const defaultOpTimeout = 2 * time.Second

type options struct {
	logger    *slog.Logger
	namespace string
	timeout   time.Duration
}

// Option configures a storage backend.
type Option func(*options)

// WithLogger sets the logger used to report degraded operations.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNamespace prefixes every key, so several clients can share one
// Redis database or Postgres table.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithOpTimeout bounds every single backend round trip.
// Non-positive values are ignored.
func WithOpTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  logger.Discard(),
		timeout: defaultOpTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
