package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidEmail       = errors.New("malformed email address")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadyUsed        = errors.New("admission token already used")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid executor context passed to repository")
)
