package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/wizardpacs/adminkit/pkg/apierror"
	"github.com/wizardpacs/adminkit/pkg/logger"
	"github.com/wizardpacs/adminkit/pkg/notify"
	"github.com/wizardpacs/adminkit/pkg/requestid"
	"github.com/wizardpacs/adminkit/pkg/session"
	"github.com/wizardpacs/adminkit/pkg/tenant"
)

// Sessions is the part of the session store the pipeline depends on.
// *session.Store satisfies it.
type Sessions interface {
	Snapshot() session.Session
	InvalidateCredential(value string, reason session.Reason) bool
}

// Client is the request pipeline. It holds no per-call state; every call
// reads the session afresh. Safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	timeout   time.Duration
	userAgent string

	sessions Sessions
	doer     Doer
	notifier notify.Notifier
	logger   *slog.Logger
	metrics  *metrics
	now      func() time.Time
}

// New creates a pipeline bound to sessions. It panics if sessions is nil.
func New(cfg Config, sessions Sessions, opts ...Option) (*Client, error) {
	if sessions == nil {
		panic("apiclient: session store is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q needs an http(s) scheme and a host", ErrInvalidBaseURL, cfg.BaseURL)
	}
	base.RawQuery, base.Fragment = "", ""

	c := &Client{
		baseURL:   base,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		sessions:  sessions,
		doer:      &http.Client{},
		notifier:  notify.NoOp{},
		logger:    logger.Discard(),
		now:       time.Now,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("apiclient"))
	return c, nil
}

// BaseURL returns the API root every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Execute runs one call through the pipeline and decodes a 2xx JSON body
// into T. The error is non-nil only for a malformed Request; every other
// failure is returned in the Outcome after its side effects have run.
func Execute[T any](ctx context.Context, c *Client, req Request) (Outcome[T], error) {
	if err := req.validate(); err != nil {
		return Outcome[T]{}, err
	}
	body, hasBody, err := req.encodeBody()
	if err != nil {
		return Outcome[T]{}, err
	}

	ctx, reqID := requestid.Ensure(ctx)

	// One snapshot per call. Headers are never reused across calls.
	snap := c.sessions.Snapshot()
	ctx = tenant.WithScope(ctx, snap.TenantScope)

	token := snap.Token()
	if req.Credential != "" {
		if snap.State == session.Anonymous {
			return Outcome[T]{}, fmt.Errorf("%w: explicit credential without a session or login in progress", ErrMalformedRequest)
		}
		token = req.Credential
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, req.Method, c.resolve(req), body)
	if err != nil {
		return Outcome[T]{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(requestid.Header, reqID)
	if hasBody {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	if snap.TenantScope != "" {
		httpReq.Header.Set(HeaderOrganizationID, snap.TenantScope)
	}

	out := Outcome[T]{RequestID: reqID}
	start := c.now()

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		failure := apierror.New(apierror.Unreachable, 0, nil, err)
		c.fail(ctx, req, token, apierror.Classify(apierror.Result{Err: err}), failure, c.now().Sub(start))
		out.Failure = failure
		return out, nil
	}
	defer func() { _ = resp.Body.Close() }()

	out.Status = resp.StatusCode
	out.Header = resp.Header

	if apierror.IsSuccess(resp.StatusCode) {
		value, derr := decode[T](resp)
		if derr == nil {
			out.Value = value
			c.succeed(ctx, req, resp.StatusCode, c.now().Sub(start))
			return out, nil
		}
		failure := apierror.New(apierror.Unknown, resp.StatusCode, nil, derr)
		c.fail(ctx, req, token, apierror.Classification{Kind: apierror.Unknown, Effects: apierror.EffectNotify}, failure, c.now().Sub(start))
		out.Failure = failure
		return out, nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, apierror.MaxBodySize))
	classification := apierror.Classify(apierror.Result{Status: resp.StatusCode})
	failure := apierror.New(classification.Kind, resp.StatusCode, raw, nil)
	c.fail(ctx, req, token, classification, failure, c.now().Sub(start))
	out.Failure = failure
	return out, nil
}

// decode reads a JSON body into T. An empty body or 204 yields the zero value,
// and NoContent never reads the body.
func decode[T any](resp *http.Response) (T, error) {
	var v T
	if resp.StatusCode == http.StatusNoContent || (resp.Request != nil && resp.Request.Method == http.MethodHead) {
		return v, nil
	}
	if _, skip := any(v).(NoContent); skip {
		return v, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		var zero T
		if errors.Is(err, io.EOF) {
			return zero, nil
		}
		return zero, errors.Join(ErrDecodeResponse, err)
	}
	return v, nil
}

func (c *Client) succeed(ctx context.Context, req Request, status int, d time.Duration) {
	c.metrics.observe(req.Method, kindOK, d.Seconds())
	c.logger.LogAttrs(ctx, slog.LevelDebug, "api call succeeded",
		logger.Method(req.Method),
		logger.Path(req.Path),
		logger.Status(status),
		logger.Duration(d),
	)
}

// fail runs the side effects of a classified failure.
func (c *Client) fail(ctx context.Context, req Request, token string, cl apierror.Classification, f *apierror.Failure, d time.Duration) {
	c.metrics.observe(req.Method, cl.Kind.String(), d.Seconds())
	c.logger.LogAttrs(ctx, slog.LevelWarn, "api call failed",
		logger.Method(req.Method),
		logger.Path(req.Path),
		logger.Status(f.Status),
		logger.Kind(cl.Kind.String()),
		logger.Duration(d),
		logger.Error(f.Unwrap()),
	)

	if cl.Effects.Has(apierror.EffectInvalidateSession) && token != "" {
		// Only the credential this call carried; a newer session survives.
		if c.sessions.InvalidateCredential(token, session.ReasonAuthExpired) {
			c.metrics.invalidated(string(session.ReasonAuthExpired))
		}
	}

	if cl.Effects.Has(apierror.EffectNotify) {
		c.notify(ctx, notify.Notice{
			Severity:  severityOf(cl.Kind),
			Kind:      cl.Kind.String(),
			Message:   f.UserMessage(),
			Status:    f.Status,
			Method:    req.Method,
			Path:      req.Path,
			RequestID: requestid.FromContext(ctx),
			CreatedAt: c.now(),
		})
	}
}

// notify swallows notifier errors and panics.
func (c *Client) notify(ctx context.Context, n notify.Notice) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.LogAttrs(ctx, slog.LevelError, "notifier panicked",
				logger.Kind(n.Kind),
				slog.Any("panic", r),
			)
		}
	}()
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "notifier failed",
			logger.Kind(n.Kind),
			logger.Error(err),
		)
	}
}

func severityOf(k apierror.Kind) notify.Severity {
	switch k {
	case apierror.Unreachable, apierror.ServerFault:
		return notify.SeverityError
	}
	return notify.SeverityWarning
}
