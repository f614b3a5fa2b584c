package domain

import "errors"

// Sentinel errors shared across services. Wrap with fmt.Errorf("%w: ...")
// to attach detail; the HTTP error handler maps them to status codes.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrThreadNotFound     = errors.New("thread not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInternal           = errors.New("internal error")
)
