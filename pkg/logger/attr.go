package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// TenantScope records the organization scope under the key "tenant_scope".
// An empty scope returns an empty Attr.
func TenantScope(scope string) slog.Attr {
	if scope == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_scope", scope)
}

// Role records a role name under the key "role".
func Role(role string) slog.Attr {
	if role == "" {
		return slog.Attr{}
	}
	return slog.String("role", role)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Method records an HTTP method.
func Method(m string) slog.Attr {
	return slog.String("method", m)
}

// Path records a request path.
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Status records an HTTP status code. Zero (no response) is kept.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Kind records a failure classification.
func Kind(k string) slog.Attr {
	return slog.String("kind", k)
}

// Reason records why something happened, e.g. an invalidation.
func Reason(r string) slog.Attr {
	return slog.String("reason", r)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
