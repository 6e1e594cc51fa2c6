package booking

import "errors"

var (
	// ErrSlotTaken is returned when the requested window is no longer free
	ErrSlotTaken = errors.New("slot already taken")

	// ErrInvalidWindow is returned when the window is empty or reversed
	ErrInvalidWindow = errors.New("invalid booking window")

	ErrNotFound = errors.New("booking not found")

	ErrInternal = errors.New("internal error")
)
