package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	Get(ctx context.Context, photographerID int64, date time.Time) (*WorkingHours, error)
	Upsert(ctx context.Context, w WorkingHours) error
}

// HoursRepository stores per-day working windows in PostgreSQL.
type HoursRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *HoursRepository {
	return &HoursRepository{db: db}
}

// Get returns the declared window for the day, or nil when none was ever
// declared. No declaration means a day off.
func (r *HoursRepository) Get(ctx context.Context, photographerID int64, date time.Time) (*WorkingHours, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var w WorkingHours
	err := r.db.GetContext(ctx2, &w, `
		SELECT photographer_id, date, start_hour, end_hour
		FROM working_hours
		WHERE photographer_id = $1 AND date = $2
	`, photographerID, date.Format("2006-01-02"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get working hours", ErrInternal)
	}

	return &w, nil
}

// Upsert declares the window for a day, silently replacing any previous
// declaration for the same photographer and date.
func (r *HoursRepository) Upsert(ctx context.Context, w WorkingHours) error {
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return ErrInvalidHours
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO working_hours (photographer_id, date, start_hour, end_hour)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (photographer_id, date) DO UPDATE SET start_hour = $3, end_hour = $4
	`, w.PhotographerID, w.Date.Format("2006-01-02"), w.StartHour, w.EndHour)
	if err != nil {
		return fmt.Errorf("%w: upsert working hours", ErrInternal)
	}

	return nil
}
