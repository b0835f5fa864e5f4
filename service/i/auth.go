package i

import (
	dmn "github.com/gridweave/gridweave-api/domain"
)

// Authenticator handles user registration and sign-in.
type Authenticator interface {
	// Register creates a user from a username and plain password.
	Register(string, string) error

	// SignIn verifies the credentials and returns the user with a fresh
	// access token.
	SignIn(string, string) (*dmn.User, string, error)
}
