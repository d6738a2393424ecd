package pacs

import "errors"

var (
	// ErrMissingCredentials is returned by Login for an empty username or password.
	ErrMissingCredentials = errors.New("pacs.missing_credentials")

	// ErrEmptyToken marks a login response that carried no token.
	ErrEmptyToken = errors.New("pacs.empty_token")

	// ErrInvalidIdentity marks an identity response without a user id.
	ErrInvalidIdentity = errors.New("pacs.invalid_identity")
)
