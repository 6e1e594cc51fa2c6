package conversation

import (
	"fmt"

	"github.com/artik0811/vkr-photostudio/internal/transport"
)

const pageSize = 3

// page slices items for one screen. Pages are counted from zero; an out
// of range page clamps to the nearest valid one.
func page[T any](items []T, p int) ([]T, int, int) {
	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if p < 0 {
		p = 0
	}
	if p >= totalPages {
		p = totalPages - 1
	}

	from := p * pageSize
	to := from + pageSize
	if to > len(items) {
		to = len(items)
	}

	return items[from:to], p, totalPages
}

// navControls builds the pagination row: back, page indicator, forward.
// The back arrow is dropped on the first page and the forward arrow on
// the last, so the indicator alone remains for a single page.
func navControls(view string, p, totalPages int) []transport.Control {
	row := make([]transport.Control, 0, 3)
	if p > 0 {
		row = append(row, transport.Control{Label: "⬅️", Token: pageToken(view, p-1)})
	}
	row = append(row, transport.Control{
		Label: fmt.Sprintf("📄 %d/%d", p+1, totalPages),
		Token: tokenIgnore,
	})
	if p < totalPages-1 {
		row = append(row, transport.Control{Label: "➡️", Token: pageToken(view, p+1)})
	}
	return row
}
