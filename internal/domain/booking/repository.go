package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
)

const queryTimeout = 3 * time.Second

const detailsQuery = `
	SELECT b.id, b.booking_start, b.booking_end, b.status,
	       c.id AS client_id, c.name AS client_name, c.handle AS client_handle,
	       c.external_id AS client_external_id,
	       p.id AS photographer_id, p.name AS photographer_name,
	       p.external_id AS photographer_external_id,
	       s.name AS service_name, s.cost AS service_cost
	FROM bookings b
	JOIN clients c ON c.id = b.client_id
	JOIN photographers p ON p.id = b.photographer_id
	JOIN services s ON s.id = b.service_id
`

type Repository interface {
	CreateIfFree(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	DetailsByID(ctx context.Context, id int64) (*Details, error)
	UpdateStatusIf(ctx context.Context, id int64, from []Status, to Status) (bool, error)
	ListForPhotographer(ctx context.Context, photographerID int64, filter ListFilter) ([]Details, error)
	ListForClient(ctx context.Context, clientID int64) ([]Details, error)
	IntervalsForDay(ctx context.Context, photographerID int64, day time.Time) ([]schedule.Interval, error)
}

// BookingRepository stores bookings in PostgreSQL. Double booking is
// prevented twice: a FOR UPDATE overlap re-check inside the insert
// transaction, and an exclusion constraint on the table for anything that
// slips past it.
type BookingRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateIfFree inserts the booking unless the window overlaps a
// non-cancelled booking of the same photographer. ErrSlotTaken is returned
// either from the explicit re-check or from the exclusion constraint.
func (r *BookingRepository) CreateIfFree(ctx context.Context, b *Booking) error {
	if !b.BookingStart.Before(b.BookingEnd) {
		return ErrInvalidWindow
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	var conflicts int
	err = tx.GetContext(ctx2, &conflicts, `
		SELECT COUNT(*) FROM bookings
		WHERE photographer_id = $1
		  AND status <> 'cancelled'
		  AND booking_start < $3
		  AND booking_end > $2
		FOR UPDATE
	`, b.PhotographerID, b.BookingStart, b.BookingEnd)
	if err != nil {
		return fmt.Errorf("%w: overlap check", ErrInternal)
	}
	if conflicts > 0 {
		return ErrSlotTaken
	}

	err = tx.GetContext(ctx2, b, `
		INSERT INTO bookings (client_id, photographer_id, service_id, booking_start, booking_end, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, client_id, photographer_id, service_id, booking_start, booking_end, status, created_at
	`, b.ClientID, b.PhotographerID, b.ServiceID, b.BookingStart, b.BookingEnd, StatusNew)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23P01" {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: insert booking", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23P01" {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var b Booking
	err := r.db.GetContext(ctx2, &b, `
		SELECT id, client_id, photographer_id, service_id, booking_start, booking_end, status, created_at
		FROM bookings
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get booking by id", ErrInternal)
	}

	return &b, nil
}

func (r *BookingRepository) DetailsByID(ctx context.Context, id int64) (*Details, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var d Details
	err := r.db.GetContext(ctx2, &d, detailsQuery+` WHERE b.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get booking details", ErrInternal)
	}

	return &d, nil
}

// UpdateStatusIf moves the booking to the target status only when its
// current status is one of from. The returned bool reports whether a row
// changed, so repeated taps on the same control become no-ops.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from []Status, to Status) (bool, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2, `
		UPDATE bookings SET status = $2
		WHERE id = $1 AND status = ANY($3)
	`, id, to, pq.Array(statusStrings(from)))
	if err != nil {
		return false, fmt.Errorf("%w: update booking status", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: rows affected", ErrInternal)
	}

	return rows > 0, nil
}

func (r *BookingRepository) ListForPhotographer(ctx context.Context, photographerID int64, filter ListFilter) ([]Details, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := detailsQuery + ` WHERE b.photographer_id = $1`
	switch filter {
	case FilterNew:
		query += ` AND b.status = 'new'`
	case FilterUpcoming:
		query += ` AND b.status = 'confirmed' AND b.booking_start > NOW()`
	}
	query += ` ORDER BY b.booking_start`

	details := make([]Details, 0)
	if err := r.db.SelectContext(ctx2, &details, query, photographerID); err != nil {
		return nil, fmt.Errorf("%w: list bookings for photographer", ErrInternal)
	}

	return details, nil
}

func (r *BookingRepository) ListForClient(ctx context.Context, clientID int64) ([]Details, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	details := make([]Details, 0)
	err := r.db.SelectContext(ctx2, &details, detailsQuery+`
		WHERE b.client_id = $1
		ORDER BY b.booking_start DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings for client", ErrInternal)
	}

	return details, nil
}

// IntervalsForDay feeds the availability engine with the occupied ranges
// of one photographer on one day. Cancelled bookings do not occupy time.
func (r *BookingRepository) IntervalsForDay(ctx context.Context, photographerID int64, day time.Time) ([]schedule.Interval, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]struct {
		Start time.Time `db:"booking_start"`
		End   time.Time `db:"booking_end"`
	}, 0)
	err := r.db.SelectContext(ctx2, &rows, `
		SELECT booking_start, booking_end
		FROM bookings
		WHERE photographer_id = $1
		  AND status <> 'cancelled'
		  AND booking_start >= $2
		  AND booking_start < $3
	`, photographerID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: intervals for day", ErrInternal)
	}

	intervals := make([]schedule.Interval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, schedule.Interval{Start: row.Start, End: row.End})
	}

	return intervals, nil
}

func statusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
