package services

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingCredentials is returned by Register when username or password is empty.
	ErrMissingCredentials = errors.New("username and password required")
)
