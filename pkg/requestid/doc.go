// Package requestid stamps outbound API calls with a correlation identifier.
//
// Every call made through apiclient carries an "X-Request-ID" header. If the
// caller's context already holds a valid id (see WithContext) it is reused,
// so several calls belonging to one CLI command share the same id; otherwise
// a new UUIDv4 is generated by Ensure.
//
// LoggerExtractor plugs into logger.WithContextExtractors so every record
// logged with such a context carries request_id.
//
//	ctx, id := requestid.Ensure(ctx)
//	req.Header.Set(requestid.Header, id)
//
// The package does not return errors. Invalid ids are replaced, never sent.
package requestid
