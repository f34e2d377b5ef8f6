package services

import "errors"

var (
	// ErrMissingField is returned when a required request field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoFile is returned when a photo upload carries no file.
	ErrNoFile = errors.New("no file provided")
)
