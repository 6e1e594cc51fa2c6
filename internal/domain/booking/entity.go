package booking

import "time"

// Status is the lifecycle state of a booking. Transitions only move
// forward; a cancelled or completed booking never changes again.
type Status string

const (
	StatusNew       Status = "new"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusNew:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Active reports whether the booking still occupies its time window.
func (s Status) Active() bool {
	return s != StatusCancelled
}

type Booking struct {
	ID             int64     `db:"id"`
	ClientID       int64     `db:"client_id"`
	PhotographerID int64     `db:"photographer_id"`
	ServiceID      int64     `db:"service_id"`
	BookingStart   time.Time `db:"booking_start"`
	BookingEnd     time.Time `db:"booking_end"`
	Status         Status    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
}

// Details is a booking joined with the names needed to present it to
// either party.
type Details struct {
	ID                   int64     `db:"id"`
	BookingStart         time.Time `db:"booking_start"`
	BookingEnd           time.Time `db:"booking_end"`
	Status               Status    `db:"status"`
	ClientID             int64     `db:"client_id"`
	ClientName           string    `db:"client_name"`
	ClientHandle         string    `db:"client_handle"`
	ClientExternalID     int64     `db:"client_external_id"`
	PhotographerID       int64     `db:"photographer_id"`
	PhotographerName     string    `db:"photographer_name"`
	PhotographerExternal *int64    `db:"photographer_external_id"`
	ServiceName          string    `db:"service_name"`
	ServiceCost          int64     `db:"service_cost"`
}

// ListFilter selects which bookings a photographer view shows.
type ListFilter int

const (
	// FilterNew shows bookings awaiting the photographer's decision
	FilterNew ListFilter = iota
	// FilterUpcoming shows confirmed bookings that have not started yet
	FilterUpcoming
	// FilterAll shows the full history
	FilterAll
)
