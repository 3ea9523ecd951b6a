package users

import "errors"

// Validation errors returned by Service. Anything else coming out of a
// Service method is an infrastructure failure from the store.
var (
	// ErrUserExists means the username is already taken.
	ErrUserExists = errors.New("a user with this username exists already")

	// ErrUserNotFound means no user has the requested ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials means login failed: no user matches the
	// username/password pair.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidInput means a username or password failed the length or
	// whitespace policy.
	ErrInvalidInput = errors.New("invalid input")
)
