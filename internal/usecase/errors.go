package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrMatchStarted          = errors.New("match has already started")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
