// Package identity defines the identity gateway port. The gateway owns
// password verification and subject issuance; this service never stores
// or checks passwords itself outside the local development adapter.
package identity

import (
	"context"
	"errors"
)

// ErrInvalidCredentials indicates the gateway rejected the email/password
// pair. Callers must not distinguish "no such email" from "wrong password".
var ErrInvalidCredentials = errors.New("identity: invalid credentials")

// ErrEmailExists indicates user creation failed because the email is
// already registered. A distinct sentinel: provisioning falls back to
// reusing the existing principal rather than string-matching gateway
// error text.
var ErrEmailExists = errors.New("identity: email already registered")

// Gateway is the port interface for the external identity provider.
type Gateway interface {
	// SignIn verifies credentials and returns the principal id.
	SignIn(ctx context.Context, email, password string) (string, error)

	// CreateUser provisions a new identity and returns the principal id.
	// Returns ErrEmailExists when the email is already registered.
	CreateUser(ctx context.Context, email, password, fullName string) (string, error)

	// SignOut revokes the principal's tokens upstream. Best-effort:
	// callers log failures and proceed with local session destruction.
	SignOut(ctx context.Context, principalID string) error
}
