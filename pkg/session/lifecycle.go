package session

// State is the authentication state of the session.
type State uint8

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type event string

const (
	evBegin      event = "begin"
	evFail       event = "fail"
	evLogin      event = "login"
	evLogout     event = "logout"
	evInvalidate event = "invalidate"
	evUpdate     event = "update-identity"
	evSetScope   event = "set-scope"
)

// transitions is the lifecycle table, indexed as [from][event] -> to.
// A missing entry means the event is rejected in that state.
var transitions = map[State]map[event]State{
	Anonymous: {
		evBegin:      Authenticating,
		evLogin:      Authenticated,
		evLogout:     Anonymous,
		evInvalidate: Anonymous,
		evSetScope:   Anonymous,
	},
	Authenticating: {
		evLogin:      Authenticated,
		evFail:       Anonymous,
		evLogout:     Anonymous,
		evInvalidate: Anonymous,
		evSetScope:   Authenticating,
	},
	Authenticated: {
		evLogin:      Authenticated,
		evLogout:     Anonymous,
		evInvalidate: Anonymous,
		evUpdate:     Authenticated,
		evSetScope:   Authenticated,
	},
}

func next(from State, ev event) (State, error) {
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	return from, &TransitionError{From: from, Event: string(ev)}
}
