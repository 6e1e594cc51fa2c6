package schedule

import (
	"context"
	"testing"
	"time"
)

type hoursKey struct {
	photographerID int64
	date           string
}

type fakeHours struct {
	windows map[hoursKey]WorkingHours
}

func (f *fakeHours) Get(ctx context.Context, photographerID int64, date time.Time) (*WorkingHours, error) {
	w, ok := f.windows[hoursKey{photographerID, date.Format("2006-01-02")}]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (f *fakeHours) Upsert(ctx context.Context, w WorkingHours) error {
	if f.windows == nil {
		f.windows = make(map[hoursKey]WorkingHours)
	}
	f.windows[hoursKey{w.PhotographerID, w.Date.Format("2006-01-02")}] = w
	return nil
}

type fakeBusy struct {
	intervals map[int64][]Interval
}

func (f *fakeBusy) IntervalsForDay(ctx context.Context, photographerID int64, day time.Time) ([]Interval, error) {
	return f.intervals[photographerID], nil
}

type fakeDurations struct {
	hours map[int64]int
}

func (f *fakeDurations) DurationHours(ctx context.Context, serviceID int64) (int, error) {
	return f.hours[serviceID], nil
}

type fakeOfferings struct {
	ids []int64
}

func (f *fakeOfferings) IDsByService(ctx context.Context, serviceID int64) ([]int64, error) {
	return f.ids, nil
}

var testDay = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time {
	return time.Date(2026, 9, 14, h, 0, 0, 0, time.UTC)
}

func window(p int64, start, end int) *fakeHours {
	return &fakeHours{windows: map[hoursKey]WorkingHours{
		{p, testDay.Format("2006-01-02")}: {PhotographerID: p, Date: testDay, StartHour: start, EndHour: end},
	}}
}

func newAvailability(hours Repository, busy *fakeBusy, durations map[int64]int, ids []int64) *Availability {
	if busy == nil {
		busy = &fakeBusy{}
	}
	return NewAvailability(hours, busy, &fakeDurations{hours: durations}, &fakeOfferings{ids: ids})
}

func TestFreeSlotsFullDay(t *testing.T) {
	a := newAvailability(window(1, 9, 18), nil, map[int64]int{10: 1}, []int64{1})

	slots, err := a.FreeSlots(context.Background(), 1, 10, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots, got %d", len(slots))
	}
	if slots[0].Label() != "09:00-10:00" {
		t.Errorf("first slot = %s", slots[0].Label())
	}
	if slots[8].Label() != "17:00-18:00" {
		t.Errorf("last slot = %s", slots[8].Label())
	}
}

func TestFreeSlotsExcludesOverlaps(t *testing.T) {
	busy := &fakeBusy{intervals: map[int64][]Interval{
		1: {{Start: at(11), End: at(13)}},
	}}
	a := newAvailability(window(1, 9, 18), busy, map[int64]int{10: 1}, []int64{1})

	slots, err := a.FreeSlots(context.Background(), 1, 10, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s.StartHour == 11 || s.StartHour == 12 {
			t.Errorf("slot %s overlaps booking", s.Label())
		}
	}
	if len(slots) != 7 {
		t.Errorf("expected 7 slots, got %d", len(slots))
	}
}

func TestFreeSlotsBackToBackAllowed(t *testing.T) {
	busy := &fakeBusy{intervals: map[int64][]Interval{
		1: {{Start: at(11), End: at(12)}},
	}}
	a := newAvailability(window(1, 9, 18), busy, map[int64]int{10: 1}, []int64{1})

	slots, err := a.FreeSlots(context.Background(), 1, 10, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	labels := make(map[string]bool)
	for _, s := range slots {
		labels[s.Label()] = true
	}
	if !labels["10:00-11:00"] {
		t.Error("slot ending at booking start should be free")
	}
	if !labels["12:00-13:00"] {
		t.Error("slot starting at booking end should be free")
	}
	if labels["11:00-12:00"] {
		t.Error("booked slot should not be free")
	}
}

func TestFreeSlotsMultiHourService(t *testing.T) {
	a := newAvailability(window(1, 10, 14), nil, map[int64]int{10: 2}, []int64{1})

	slots, err := a.FreeSlots(context.Background(), 1, 10, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10-12, 11-13, 12-14; never past the end of the window
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[2].EndHour != 14 {
		t.Errorf("last slot must end at 14, got %d", slots[2].EndHour)
	}
}

func TestFreeSlotsNotWorking(t *testing.T) {
	a := newAvailability(&fakeHours{}, nil, map[int64]int{10: 1}, []int64{1})

	_, err := a.FreeSlots(context.Background(), 1, 10, testDay)
	if err != ErrNotWorking {
		t.Fatalf("expected ErrNotWorking, got %v", err)
	}
}

func TestFreeSlotsZeroHoursMeansOff(t *testing.T) {
	a := newAvailability(window(1, 0, 0), nil, map[int64]int{10: 1}, []int64{1})

	_, err := a.FreeSlots(context.Background(), 1, 10, testDay)
	if err != ErrNotWorking {
		t.Fatalf("expected ErrNotWorking, got %v", err)
	}
}

func TestFreeSlotsAnyUnionDeduplicates(t *testing.T) {
	hours := &fakeHours{windows: map[hoursKey]WorkingHours{
		{1, testDay.Format("2006-01-02")}: {PhotographerID: 1, Date: testDay, StartHour: 9, EndHour: 12},
		{2, testDay.Format("2006-01-02")}: {PhotographerID: 2, Date: testDay, StartHour: 11, EndHour: 14},
	}}
	a := newAvailability(hours, nil, map[int64]int{10: 1}, []int64{1, 2})

	slots, err := a.FreeSlotsAny(context.Background(), 10, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 9,10,11 from one and 11,12,13 from the other; 11 counted once
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].StartHour <= slots[i-1].StartHour {
			t.Fatalf("slots not sorted: %v", slots)
		}
	}
}

func TestFreeSlotsAnySkipsDaysOff(t *testing.T) {
	a := newAvailability(window(2, 10, 12), nil, map[int64]int{10: 1}, []int64{1, 2})

	slots, err := a.FreeSlotsAny(context.Background(), 10, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
}

func TestFreeSlotsAnyNoPhotographers(t *testing.T) {
	a := newAvailability(&fakeHours{}, nil, map[int64]int{10: 1}, nil)

	_, err := a.FreeSlotsAny(context.Background(), 10, testDay)
	if err != ErrNoPhotographer {
		t.Fatalf("expected ErrNoPhotographer, got %v", err)
	}
}

func TestFindAvailablePicksLowestID(t *testing.T) {
	hours := &fakeHours{windows: map[hoursKey]WorkingHours{
		{1, testDay.Format("2006-01-02")}: {PhotographerID: 1, Date: testDay, StartHour: 9, EndHour: 18},
		{2, testDay.Format("2006-01-02")}: {PhotographerID: 2, Date: testDay, StartHour: 9, EndHour: 18},
	}}
	a := newAvailability(hours, nil, map[int64]int{10: 1}, []int64{1, 2})

	id, ok, err := a.FindAvailable(context.Background(), 10, testDay, Slot{StartHour: 10, EndHour: 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || id != 1 {
		t.Fatalf("expected photographer 1, got %d (ok=%v)", id, ok)
	}
}

func TestFindAvailableSkipsBusy(t *testing.T) {
	hours := &fakeHours{windows: map[hoursKey]WorkingHours{
		{1, testDay.Format("2006-01-02")}: {PhotographerID: 1, Date: testDay, StartHour: 9, EndHour: 18},
		{2, testDay.Format("2006-01-02")}: {PhotographerID: 2, Date: testDay, StartHour: 9, EndHour: 18},
	}}
	busy := &fakeBusy{intervals: map[int64][]Interval{
		1: {{Start: at(10), End: at(11)}},
	}}
	a := newAvailability(hours, busy, map[int64]int{10: 1}, []int64{1, 2})

	id, ok, err := a.FindAvailable(context.Background(), 10, testDay, Slot{StartHour: 10, EndHour: 11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || id != 2 {
		t.Fatalf("expected photographer 2, got %d (ok=%v)", id, ok)
	}
}

func TestFindAvailableNoneFree(t *testing.T) {
	a := newAvailability(window(1, 9, 10), nil, map[int64]int{10: 1}, []int64{1})

	_, ok, err := a.FindAvailable(context.Background(), 10, testDay, Slot{StartHour: 15, EndHour: 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("no photographer should be free at 15:00")
	}
}

func TestAnyWorkingDay(t *testing.T) {
	a := newAvailability(window(2, 10, 12), nil, map[int64]int{10: 1}, []int64{1, 2})

	working, err := a.AnyWorkingDay(context.Background(), 10, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !working {
		t.Fatal("expected a working photographer")
	}

	off, err := a.AnyWorkingDay(context.Background(), 10, testDay.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if off {
		t.Fatal("next day has no declared windows")
	}
}
