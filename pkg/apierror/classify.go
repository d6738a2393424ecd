package apierror

import "net/http"

// Effect is a set of side effects the pipeline must run for a failure.
type Effect uint8

const (
	EffectNone Effect = 0
	// EffectNotify shows the user a notice.
	EffectNotify Effect = 1 << iota
	// EffectInvalidateSession ends the session the request was sent with.
	EffectInvalidateSession
)

// Has reports whether every effect in other is part of e.
func (e Effect) Has(other Effect) bool {
	return other != EffectNone && e&other == other
}

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectNotify:
		return "notify"
	case EffectInvalidateSession:
		return "invalidate_session"
	case EffectNotify | EffectInvalidateSession:
		return "invalidate_session+notify"
	}
	return "effect(?)"
}

// Result is what the transport produced. Err is set when no response
// arrived; Status is then ignored.
type Result struct {
	Status int
	Err    error
}

// Classification is the verdict for a failed Result.
type Classification struct {
	Kind    Kind
	Effects Effect
}

// Classify maps a non-2xx or failed Result onto the taxonomy. It never looks
// at the response body. Callers must not pass a 2xx Result without Err.
func Classify(r Result) Classification {
	if r.Err != nil || r.Status == 0 {
		return Classification{Kind: Unreachable, Effects: EffectNotify}
	}

	switch {
	case r.Status == http.StatusUnauthorized:
		return Classification{Kind: AuthExpired, Effects: EffectInvalidateSession | EffectNotify}
	case r.Status == http.StatusForbidden:
		return Classification{Kind: Forbidden, Effects: EffectNotify}
	case r.Status == http.StatusNotFound:
		return Classification{Kind: NotFound, Effects: EffectNotify}
	case r.Status == http.StatusConflict, r.Status == http.StatusUnprocessableEntity:
		return Classification{Kind: Invalid, Effects: EffectNone}
	case r.Status >= 500 && r.Status <= 599:
		return Classification{Kind: ServerFault, Effects: EffectNotify}
	}
	return Classification{Kind: Unknown, Effects: EffectNotify}
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status <= 299
}
