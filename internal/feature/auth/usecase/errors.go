// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID, username
	// or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyExists is returned when registering with a taken
	// username.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when registering with a taken email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on any authentication failure. It is
	// deliberately generic so callers cannot distinguish a missing user from
	// a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrStoreUnavailable is returned when the document store has no live
	// handle.
	ErrStoreUnavailable = errors.New("user store unavailable")
)
