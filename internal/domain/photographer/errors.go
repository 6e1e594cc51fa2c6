package photographer

import "errors"

var (
	// ErrNotFound is returned when no photographer matches the lookup
	ErrNotFound = errors.New("photographer not found")

	ErrInternal = errors.New("internal error")
)
