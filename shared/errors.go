package shared

import "errors"

var (
	// common errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrStorage       = errors.New("storage error")

	// auth-specific errors
	ErrUnauthorized = errors.New("unauthorized")
)
