package service

// Service is a bookable offering from the studio catalog.
type Service struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Cost     int64   `db:"cost"`
	Duration int     `db:"duration"` // minutes
	Comment  *string `db:"comment"`
}

// DurationHours is the number of whole slot hours the service occupies.
// A 90 minute service takes two hourly slots.
func (s Service) DurationHours() int {
	h := s.Duration / 60
	if s.Duration%60 != 0 {
		h++
	}
	if h < 1 {
		h = 1
	}
	return h
}
