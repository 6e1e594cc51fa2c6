package schedule

import (
	"fmt"
	"time"
)

// WorkingHours is a photographer's declared window for one calendar day.
// Start and end hours of zero mean the day is off.
type WorkingHours struct {
	PhotographerID int64     `db:"photographer_id"`
	Date           time.Time `db:"date"`
	StartHour      int       `db:"start_hour"`
	EndHour        int       `db:"end_hour"`
}

// Working reports whether the day is a working day at all.
func (w WorkingHours) Working() bool {
	return w.StartHour > 0 && w.EndHour > 0
}

// Slot is a bookable window within a day, in whole hours.
type Slot struct {
	StartHour int
	EndHour   int
}

// Label renders the slot the way it is shown to clients, e.g. "09:00-11:00".
func (s Slot) Label() string {
	return fmt.Sprintf("%02d:00-%02d:00", s.StartHour, s.EndHour)
}

// Interval is a concrete occupied time range within a day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the interval intersects [start, end). Touching
// endpoints do not overlap, so back-to-back bookings are allowed.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}
