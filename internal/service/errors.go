package service

import (
	"errors"

	"todo_service/internal/repository"
)

// Errors returned by the core operations. Callers should match them with errors.Is.
var (
	ErrConflict       = errors.New("username already taken")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = repository.ErrNotFound
	ErrInternal       = errors.New("internal error")
	ErrHashingFailed  = errors.New("password hashing failed")
	ErrMalformedClaim = errors.New("malformed auth claim")
)
