package tenant

import (
	"context"
	"log/slog"

	"github.com/wizardpacs/adminkit/pkg/logger"
)

type scopeKey struct{}

// WithScope records the organization scope a call is made under.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the recorded scope. An empty scope counts as none.
func ScopeFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	scope, _ := ctx.Value(scopeKey{}).(string)
	return scope, scope != ""
}

// LoggerExtractor adds tenant_scope to records made under a scope.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		scope, ok := ScopeFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.TenantScope(scope), true
	}
}
