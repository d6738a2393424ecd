package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxBodySize caps how much of an error response is kept on a Failure.
const MaxBodySize = 64 << 10

// Failure is the error half of an outcome.
type Failure struct {
	Kind   Kind
	Status int
	// Message is the server supplied "message" field, or the kind's default.
	Message string
	// Body is the raw (capped) response body, for inline field errors.
	Body []byte

	serverMessage bool
	cause         error
}

// New builds a Failure. Message is taken from body when it is a JSON
// object with a non-empty "message" string.
func New(kind Kind, status int, body []byte, cause error) *Failure {
	if len(body) > MaxBodySize {
		body = body[:MaxBodySize]
	}
	f := &Failure{Kind: kind, Status: status, Body: body, cause: cause}
	if msg := extractMessage(body); msg != "" {
		f.Message = msg
		f.serverMessage = true
	} else {
		f.Message = kind.DefaultMessage()
	}
	return f
}

func (f *Failure) Error() string {
	switch {
	case f.Status == 0 && f.cause != nil:
		return fmt.Sprintf("%s: %v", f.Kind, f.cause)
	case f.Status == 0:
		return f.Kind.String()
	}
	return fmt.Sprintf("%s (%d): %s", f.Kind, f.Status, f.Message)
}

// Unwrap returns the transport or decode error, if any.
func (f *Failure) Unwrap() error {
	return f.cause
}

// Is matches another *Failure by kind, so errors.Is(err, &Failure{Kind: NotFound}) works.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

// UserMessage is the text a notice shows. Classified kinds use their fixed
// wording; Unknown and Invalid prefer what the server said.
func (f *Failure) UserMessage() string {
	switch f.Kind {
	case Unknown, Invalid:
		return f.Message
	}
	return f.Kind.DefaultMessage()
}

// HasServerMessage reports whether Message came from the response body.
func (f *Failure) HasServerMessage() bool {
	return f.serverMessage
}

// DecodeBody unmarshals the raw body, e.g. into a field error structure.
func (f *Failure) DecodeBody(v any) error {
	if len(f.Body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(f.Body, v)
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) && f != nil {
		return f, true
	}
	return nil, false
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == kind
}

// ErrEmptyBody is returned by DecodeBody when the response had no body.
var ErrEmptyBody = errors.New("apierror.empty_body")

func extractMessage(body []byte) string {
	if len(body) == 0 || body[0] != '{' {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
