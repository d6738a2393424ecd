package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentity indicates an identity without an ID was passed to Login
	ErrInvalidIdentity = errors.New("session.invalid_identity")

	// ErrInvalidCredential indicates an empty credential was passed to Login
	ErrInvalidCredential = errors.New("session.invalid_credential")

	// ErrTransitionNotAllowed indicates the lifecycle table has no entry for the event
	ErrTransitionNotAllowed = errors.New("session.transition_not_allowed")
)

// TransitionError reports a lifecycle event fired from a state that does not accept it.
type TransitionError struct {
	From  State
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("session: no transition from %s on %s", e.From, e.Event)
}

func (e *TransitionError) Unwrap() error {
	return ErrTransitionNotAllowed
}
