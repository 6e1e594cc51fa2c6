package conversation

import (
	"fmt"
	"time"

	"github.com/artik0811/vkr-photostudio/internal/transport"
)

// dayAvailable reports whether a day can be offered for selection.
type dayAvailable func(day time.Time) bool

// calendarGrid renders one month as control rows: a title row, a weekday
// header, then week rows. Days in the past are crossed out and inert;
// future days without availability are crossed out but still tappable so
// the engine can explain. Blank cells pad the first and last weeks.
func calendarGrid(month time.Month, year int, today time.Time, available dayAvailable) [][]transport.Control {
	rows := make([][]transport.Control, 0, 8)

	rows = append(rows, []transport.Control{{
		Label: fmt.Sprintf("%s %d", month, year),
		Token: tokenIgnore,
	}})

	header := make([]transport.Control, 0, 7)
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		header = append(header, transport.Control{Label: wd, Token: tokenIgnore})
	}
	rows = append(rows, header)

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first offset of the 1st.
	offset := (int(first.Weekday()) + 6) % 7

	week := make([]transport.Control, 0, 7)
	for i := 0; i < offset; i++ {
		week = append(week, transport.Control{Label: " ", Token: tokenIgnore})
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, today.Location())

		var cell transport.Control
		switch {
		case day.Before(todayDate):
			cell = transport.Control{Label: fmt.Sprintf("❌ %d", d), Token: tokenIgnore}
		case !available(day):
			cell = transport.Control{Label: fmt.Sprintf("❌ %d", d), Token: calendarSelectToken(day)}
		default:
			cell = transport.Control{Label: fmt.Sprintf("%d", d), Token: calendarSelectToken(day)}
		}
		week = append(week, cell)

		if len(week) == 7 {
			rows = append(rows, week)
			week = make([]transport.Control, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, transport.Control{Label: " ", Token: tokenIgnore})
		}
		rows = append(rows, week)
	}

	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	rows = append(rows, []transport.Control{
		{Label: "⬅️", Token: calendarPrevToken(prev.Month(), prev.Year())},
		{Label: "➡️", Token: calendarNextToken(next.Month(), next.Year())},
	})

	return rows
}
