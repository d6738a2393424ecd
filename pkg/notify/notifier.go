package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/wizardpacs/adminkit/pkg/logger"
)

// Notifier shows notices to the user. Callers treat delivery as best
// effort: a returned error is logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice) error

func (f NotifierFunc) Notify(ctx context.Context, n Notice) error {
	return f(ctx, n)
}

// Multi fans a notice out to several notifiers.
type Multi struct {
	notifiers []Notifier
	logger    *slog.Logger
}

// MultiOption configures a Multi.
type MultiOption func(*Multi)

// WithMultiLogger sets the logger for the Multi.
func WithMultiLogger(l *slog.Logger) MultiOption {
	return func(m *Multi) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMulti creates a notifier delivering to every non-nil notifier in order.
func NewMulti(notifiers []Notifier, opts ...MultiOption) *Multi {
	m := &Multi{logger: logger.Discard()}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Notify delivers to all notifiers. Failures are logged and skipped.
func (m *Multi) Notify(ctx context.Context, n Notice) error {
	for i, d := range m.notifiers {
		if err := d.Notify(ctx, n); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "Failed to deliver notice",
				logger.Kind(n.Kind),
				slog.Int("notifier_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

// NoOp discards every notice.
type NoOp struct{}

func (NoOp) Notify(context.Context, Notice) error { return nil }

// Writer prints one line per notice, e.g. to os.Stderr in the CLI.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a notifier writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Notify(_ context.Context, n Notice) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", n.Severity, n.Message)
	if n.Status > 0 {
		line += fmt.Sprintf(" (HTTP %d)", n.Status)
	}
	if n.RequestID != "" {
		line += " request_id=" + n.RequestID
	}
	_, err := fmt.Fprintln(w.w, line)
	return err
}

// Recorder keeps every notice in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(_ context.Context, n Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

// Notices returns a copy of what was recorded so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Len returns the number of recorded notices.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

// Reset drops all recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
