package schedule

import "errors"

var (
	// ErrNotWorking is returned when the photographer has no working
	// window on the requested day
	ErrNotWorking = errors.New("photographer is not working that day")

	// ErrNoPhotographer is returned when no photographer offers the
	// service at all
	ErrNoPhotographer = errors.New("no photographer offers this service")

	// ErrInvalidHours is returned for a malformed or reversed hour range
	ErrInvalidHours = errors.New("invalid working hours")

	ErrInternal = errors.New("internal error")
)
