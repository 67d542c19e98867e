package users

import "errors"

var (
	// ErrNotFound means no user matched the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrUsernameTaken and ErrEmailTaken signal a uniqueness conflict at registration.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// login path never leaks which one was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
