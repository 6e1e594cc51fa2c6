package client

import "errors"

var (
	// ErrNotFound is returned when no active client matches the lookup
	ErrNotFound = errors.New("client not found")

	// ErrNameTooShort is returned when a display name is shorter than 2 characters
	ErrNameTooShort = errors.New("name too short: must be at least 2 characters")

	ErrInternal = errors.New("internal error")
)
