// Package logger builds the *slog.Logger used throughout adminkit.
//
// New takes functional options for format, level, output and static
// attributes, and wraps the handler with NewContextHandler, which runs
// ContextExtractor callbacks on every record. The tenant and requestid
// packages ship extractors, so a record logged with a request context
// carries request_id and tenant_scope without the caller adding them.
//
// Attribute helpers in attr.go keep key names consistent; helpers for
// optional values return an empty Attr when the value is missing, which
// slog drops.
//
// # Usage
//
//	log, err := logger.FromConfig(cfg.Log, "pacsadmin",
//	    logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
//	)
//	if err != nil {
//	    return err
//	}
//	log.InfoContext(ctx, "request finished", logger.Status(200), logger.Kind("ok"))
//
// The context handler masks attributes keyed password, token, authorization
// or credential with Redacted. Callers should still avoid logging secrets
// under other keys.
package logger
