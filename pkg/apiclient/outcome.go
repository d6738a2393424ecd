package apiclient

import (
	"net/http"

	"github.com/wizardpacs/adminkit/pkg/apierror"
)

// NoContent is a result type for calls whose success body is ignored,
// whatever its content type.
type NoContent struct{}

// Outcome is the result of a call: either Value or Failure, never both.
type Outcome[T any] struct {
	Value   T
	Failure *apierror.Failure

	// Status is 0 when no response arrived.
	Status    int
	Header    http.Header
	RequestID string
}

// OK reports whether the call succeeded.
func (o Outcome[T]) OK() bool {
	return o.Failure == nil
}

// Err returns the failure as an error, or nil.
func (o Outcome[T]) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}

// Get returns the value and the failure as an error.
func (o Outcome[T]) Get() (T, error) {
	return o.Value, o.Err()
}

// Kind returns the failure kind. It reports false on success.
func (o Outcome[T]) Kind() (apierror.Kind, bool) {
	if o.Failure == nil {
		return 0, false
	}
	return o.Failure.Kind, true
}
