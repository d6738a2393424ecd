// Package apierror classifies failed API calls.
//
// Classify is a pure, total function from a transport Result (status code or
// transport error) to a Kind and the side effects the request pipeline must
// run. Only the status code is consulted:
//
//	no response / timeout / cancelled  Unreachable   notify
//	401                                AuthExpired   invalidate session, notify
//	403                                Forbidden     notify
//	404                                NotFound      notify
//	409, 422                           Invalid       (none, rendered inline)
//	5xx                                ServerFault   notify
//	anything else non-2xx              Unknown       notify
//
// A Failure carries the verdict plus the server's optional "message" field and
// the raw body (capped at MaxBodySize). It implements error and unwraps to the
// transport error, so callers can use errors.As, AsFailure or IsKind:
//
//	if apierror.IsKind(err, apierror.Invalid) {
//	    var fields map[string]string
//	    _ = failure.DecodeBody(&fields)
//	}
package apierror
