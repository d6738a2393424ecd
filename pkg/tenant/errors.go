package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no organization matches the reference.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned for an empty reference.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrAmbiguousName is returned when a name matches more than one organization.
	ErrAmbiguousName = errors.New("tenant name is ambiguous")

	// ErrProviderFailed wraps errors from the Provider.
	ErrProviderFailed = errors.New("tenant provider failed")
)
