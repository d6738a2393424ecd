package apiclient

import "errors"

// Programmer errors, returned from Execute and New. Expected failures of a
// call are never reported this way; they are carried by the Outcome.
var (
	ErrMalformedRequest = errors.New("apiclient: malformed request")
	ErrInvalidBaseURL   = errors.New("apiclient: invalid base url")
)

// ErrDecodeResponse is the cause of an Unknown failure for a 2xx body that
// does not decode into the expected type.
var ErrDecodeResponse = errors.New("apiclient: response body does not decode")
