package domain

import "errors"

var (
	// Refresh token state machine.
	ErrAlreadyConsumed   = errors.New("domain: refresh token already consumed")
	ErrExpired           = errors.New("domain: refresh token expired")
	ErrInvalidLifespan   = errors.New("domain: refresh token lifespan must be positive")
	ErrInvalidCodeLength = errors.New("domain: refresh token code length must be positive")

	// Account invariants.
	ErrInvalidEmail = errors.New("domain: email must not be empty")
	ErrMissingHash  = errors.New("domain: password hash is required")
	ErrMissingRole  = errors.New("domain: role is required")
	ErrSameRole     = errors.New("domain: cannot apply the same role")
)
