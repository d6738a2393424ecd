package session

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Store
type Option func(*Store)

// WithLogger sets the logger used for lifecycle and persistence messages
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp credentials
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithListener registers a listener at construction time
func WithListener(fn Listener) Option {
	return func(s *Store) {
		if fn != nil {
			s.listeners = append(s.listeners, subscription{id: s.nextListenerID(), fn: fn})
		}
	}
}
