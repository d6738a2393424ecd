package tenant

import (
	"log/slog"
	"time"
)

// Option configures the Resolver.
type Option func(*Resolver)

// WithCache sets a custom cache implementation.
func WithCache(cache Cache) Option {
	return func(r *Resolver) {
		if cache != nil {
			r.cache = cache
		}
	}
}

// WithCacheTTL sets how long a listing is reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithLogger sets a custom logger for the resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}
