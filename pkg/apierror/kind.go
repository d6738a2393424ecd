package apierror

import "fmt"

// Kind is the failure taxonomy every non-2xx outcome maps onto.
type Kind uint8

const (
	// Unknown covers any non-2xx status not listed below, and 2xx bodies that do not decode.
	Unknown Kind = iota
	// Unreachable means no response was received: timeout, DNS, refused, cancelled.
	Unreachable
	// AuthExpired is a 401: the credential is no longer accepted.
	AuthExpired
	// Forbidden is a 403.
	Forbidden
	// NotFound is a 404.
	NotFound
	// Invalid is a 409 or 422: the request was understood and rejected on its content.
	Invalid
	// ServerFault is any 5xx.
	ServerFault
)

var kindNames = [...]string{
	Unknown:     "unknown",
	Unreachable: "unreachable",
	AuthExpired: "auth_expired",
	Forbidden:   "forbidden",
	NotFound:    "not_found",
	Invalid:     "invalid",
	ServerFault: "server_fault",
}

var defaultMessages = [...]string{
	Unknown:     "Unexpected error while communicating with the server.",
	Unreachable: "Connection error. Check your connectivity.",
	AuthExpired: "Session expired. Please sign in again.",
	Forbidden:   "You do not have permission to perform this action.",
	NotFound:    "Resource not found.",
	Invalid:     "The request was rejected. Check the submitted fields.",
	ServerFault: "Internal server error. Contact the administrator.",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// DefaultMessage is the user facing text shown when the server sent none.
func (k Kind) DefaultMessage() string {
	if int(k) < len(defaultMessages) {
		return defaultMessages[k]
	}
	return defaultMessages[Unknown]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("apierror: unknown kind %q", string(b))
}
