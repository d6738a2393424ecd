// Package notify is the notification surface of the request pipeline: the
// place a failed call is reported to the person using the client.
//
// The pipeline emits at most one Notice per call and never waits on, or
// fails because of, its Notifier. Implementations shipped here:
//
//   - Writer   – one line per notice on an io.Writer (the CLI uses stderr)
//   - Recorder – keeps notices in memory, for tests and summaries
//   - Multi    – fans out to several notifiers, logging failures
//   - NoOp     – drops everything
//
// Any func(ctx, Notice) error can be used through NotifierFunc.
package notify
