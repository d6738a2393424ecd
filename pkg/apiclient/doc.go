// Package apiclient is the authenticated request pipeline of the PACS
// administration API.
//
// Every call goes through Execute, which
//
//  1. validates the Request (a malformed one is a programmer error and the
//     only case where Execute returns a non-nil error),
//  2. takes one session Snapshot and derives the headers from it:
//     "Authorization: Bearer <credential>" iff the session is authenticated,
//     "X-Organization-Id" iff a tenant scope is selected, plus X-Request-ID,
//  3. sends it through the configured Doer with a per-call timeout,
//  4. decodes a 2xx JSON body into T, or classifies the failure with
//     apierror.Classify,
//  5. runs the side effects: a 401 invalidates the session that issued the
//     credential the call carried, and every kind except Invalid produces
//     one notify.Notice,
//  6. returns the Outcome.
//
// Calls already in flight when the session ends finish with the credential
// they captured; a resulting 401 runs a second, idempotent invalidation that
// cannot touch a newer session. Calls started afterwards carry no credential.
//
// # Usage
//
//	client, err := apiclient.New(cfg, store,
//	    apiclient.WithNotifier(notify.NewWriter(os.Stderr)),
//	    apiclient.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	out, err := apiclient.Get[[]User](ctx, client, "/users", nil)
//	if err != nil {
//	    return err // malformed request
//	}
//	if !out.OK() {
//	    return out.Failure
//	}
//	users := out.Value
//
// # Metrics
//
// WithMetrics registers adminkit_requests_total{method,kind},
// adminkit_request_duration_seconds{method} and
// adminkit_session_invalidations_total{reason}.
package apiclient
