package schedule

import (
	"context"
	"sort"
	"time"
)

// BusyIntervals yields the occupied time ranges for a photographer on one
// day. Cancelled bookings are not occupied.
type BusyIntervals interface {
	IntervalsForDay(ctx context.Context, photographerID int64, day time.Time) ([]Interval, error)
}

// ServiceDurations resolves a service id to its slot length in hours.
type ServiceDurations interface {
	DurationHours(ctx context.Context, serviceID int64) (int, error)
}

// Offerings lists photographer ids offering a service in ascending order.
type Offerings interface {
	IDsByService(ctx context.Context, serviceID int64) ([]int64, error)
}

// Availability computes free hourly slots from working hours, service
// durations and existing bookings.
type Availability struct {
	hours     Repository
	busy      BusyIntervals
	durations ServiceDurations
	offerings Offerings
}

func NewAvailability(hours Repository, busy BusyIntervals, durations ServiceDurations, offerings Offerings) *Availability {
	return &Availability{
		hours:     hours,
		busy:      busy,
		durations: durations,
		offerings: offerings,
	}
}

// FreeSlots returns the bookable windows for one photographer on one day,
// in chronological order. ErrNotWorking is returned when the photographer
// declared no window for the day.
func (a *Availability) FreeSlots(ctx context.Context, photographerID, serviceID int64, day time.Time) ([]Slot, error) {
	w, err := a.hours.Get(ctx, photographerID, day)
	if err != nil {
		return nil, err
	}
	if w == nil || !w.Working() {
		return nil, ErrNotWorking
	}

	duration, err := a.durations.DurationHours(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	busy, err := a.busy.IntervalsForDay(ctx, photographerID, day)
	if err != nil {
		return nil, err
	}

	return freeSlots(day, w.StartHour, w.EndHour, duration, busy), nil
}

// FreeSlotsAny returns the union of free slots over every photographer
// offering the service, deduplicated and sorted. A photographer who is off
// that day simply contributes nothing.
func (a *Availability) FreeSlotsAny(ctx context.Context, serviceID int64, day time.Time) ([]Slot, error) {
	ids, err := a.offerings.IDsByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoPhotographer
	}

	seen := make(map[Slot]struct{})
	union := make([]Slot, 0)
	for _, id := range ids {
		slots, err := a.FreeSlots(ctx, id, serviceID, day)
		if err != nil {
			if err == ErrNotWorking {
				continue
			}
			return nil, err
		}
		for _, s := range slots {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			union = append(union, s)
		}
	}

	sort.Slice(union, func(i, j int) bool { return union[i].StartHour < union[j].StartHour })
	return union, nil
}

// FindAvailable picks the photographer who will take a booking for the slot
// when the client selected "any". Candidates are tried in ascending id order
// and the first one free for the whole window wins.
func (a *Availability) FindAvailable(ctx context.Context, serviceID int64, day time.Time, slot Slot) (int64, bool, error) {
	ids, err := a.offerings.IDsByService(ctx, serviceID)
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, ErrNoPhotographer
	}

	for _, id := range ids {
		slots, err := a.FreeSlots(ctx, id, serviceID, day)
		if err != nil {
			if err == ErrNotWorking {
				continue
			}
			return 0, false, err
		}
		for _, s := range slots {
			if s == slot {
				return id, true, nil
			}
		}
	}

	return 0, false, nil
}

// IsWorkingDay reports whether the photographer declared a working window
// for the day.
func (a *Availability) IsWorkingDay(ctx context.Context, photographerID int64, day time.Time) (bool, error) {
	w, err := a.hours.Get(ctx, photographerID, day)
	if err != nil {
		return false, err
	}
	return w != nil && w.Working(), nil
}

// AnyWorkingDay reports whether at least one photographer offering the
// service works on the day.
func (a *Availability) AnyWorkingDay(ctx context.Context, serviceID int64, day time.Time) (bool, error) {
	ids, err := a.offerings.IDsByService(ctx, serviceID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		working, err := a.IsWorkingDay(ctx, id, day)
		if err != nil {
			return false, err
		}
		if working {
			return true, nil
		}
	}
	return false, nil
}

// freeSlots enumerates candidate windows hour by hour across the working
// range and keeps those clear of every busy interval. Candidates start at
// each whole hour and must end by endHour.
func freeSlots(day time.Time, startHour, endHour, durationHours int, busy []Interval) []Slot {
	slots := make([]Slot, 0)
	for h := startHour; h+durationHours <= endHour; h++ {
		slotStart := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
		slotEnd := slotStart.Add(time.Duration(durationHours) * time.Hour)

		taken := false
		for _, iv := range busy {
			if iv.Overlaps(slotStart, slotEnd) {
				taken = true
				break
			}
		}
		if !taken {
			slots = append(slots, Slot{StartHour: h, EndHour: h + durationHours})
		}
	}
	return slots
}
