package session

// EventKind names the operation that changed the session.
type EventKind string

const (
	EventLogin          EventKind = "login"
	EventLogout         EventKind = "logout"
	EventInvalidated    EventKind = "invalidated"
	EventRestored       EventKind = "restored"
	EventIdentity       EventKind = "identity_updated"
	EventTenantScope    EventKind = "tenant_scope_changed"
	EventAuthenticating EventKind = "authenticating"
	EventAuthFailed     EventKind = "authentication_failed"
)

// Reason explains a forced invalidation.
type Reason string

const (
	ReasonAuthExpired Reason = "auth_expired"
	ReasonManual      Reason = "manual"
	ReasonRevoked     Reason = "revoked"
)

// Event is delivered to subscribers after the store lock is released.
type Event struct {
	Kind     EventKind
	From     State
	To       State
	Reason   Reason
	Snapshot Session
}

// Listener receives session events. It runs on the goroutine that caused the change.
type Listener func(Event)
