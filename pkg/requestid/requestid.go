package requestid

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/wizardpacs/adminkit/pkg/logger"
)

// Header carries the id on outbound calls.
const Header = "X-Request-ID"

const maxLen = 128

var allowed = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type ctxKey struct{}

// New returns a fresh UUIDv4 request id.
func New() string {
	return uuid.NewString()
}

// WithContext returns a copy of ctx carrying id. The id is not validated
// here; Ensure replaces it if it is unusable.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ensure returns ctx carrying a valid request id together with that id.
// A valid id already in ctx is kept; a missing or invalid one is replaced.
func Ensure(ctx context.Context) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}
	if id := FromContext(ctx); IsValid(id) {
		return ctx, id
	}
	id := New()
	return WithContext(ctx, id), id
}

// IsValid reports whether id is safe to send as a header value.
func IsValid(id string) bool {
	return id != "" && len(id) <= maxLen && allowed.MatchString(id)
}

// LoggerExtractor adds request_id to records whose context carries an id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}
