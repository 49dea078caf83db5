package application

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrMissingField       = errors.New("missing field")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidImage       = errors.New("invalid image payload")
	ErrStorageDisabled    = errors.New("image storage not configured")
)
