package pacs

import (
	"log/slog"
	"time"
)

// AuthOption configures an Authenticator.
type AuthOption func(*Authenticator)

// WithIdentityPath sets the endpoint the identity is fetched from after login.
func WithIdentityPath(path string) AuthOption {
	return func(a *Authenticator) {
		if path != "" {
			a.identityPath = path
		}
	}
}

// WithLogger sets the logger for the authentication flow.
func WithLogger(l *slog.Logger) AuthOption {
	return func(a *Authenticator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the clock that stamps acquired credentials.
func WithClock(now func() time.Time) AuthOption {
	return func(a *Authenticator) {
		if now != nil {
			a.now = now
		}
	}
}
