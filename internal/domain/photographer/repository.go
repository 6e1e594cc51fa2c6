package photographer

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
	GetByID(ctx context.Context, id int64) (*Photographer, error)
	GetByExternalID(ctx context.Context, externalID int64) (*Photographer, error)
	List(ctx context.Context) ([]Photographer, error)
	ListByService(ctx context.Context, serviceID int64) ([]Photographer, error)
	IDsByService(ctx context.Context, serviceID int64) ([]int64, error)
	Create(ctx context.Context, p *Photographer) error
	UpdateDescription(ctx context.Context, id int64, description string) error
	UpdatePortfolio(ctx context.Context, id int64, portfolioURL string) error
	AssignService(ctx context.Context, photographerID, serviceID int64) error
	UnassignService(ctx context.Context, photographerID, serviceID int64) error
}

// PhotographerRepository provides photographer storage backed by PostgreSQL.
type PhotographerRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PhotographerRepository {
	return &PhotographerRepository{db: db}
}

func (r *PhotographerRepository) GetByID(ctx context.Context, id int64) (*Photographer, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p Photographer
	err := r.db.GetContext(ctx2, &p, `
		SELECT id, external_id, name, description, portfolio_url
		FROM photographers
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get photographer by id", ErrInternal)
	}

	return &p, nil
}

func (r *PhotographerRepository) GetByExternalID(ctx context.Context, externalID int64) (*Photographer, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p Photographer
	err := r.db.GetContext(ctx2, &p, `
		SELECT id, external_id, name, description, portfolio_url
		FROM photographers
		WHERE external_id = $1
	`, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get photographer by external id", ErrInternal)
	}

	return &p, nil
}

func (r *PhotographerRepository) List(ctx context.Context) ([]Photographer, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	photographers := make([]Photographer, 0)
	err := r.db.SelectContext(ctx2, &photographers, `
		SELECT id, external_id, name, description, portfolio_url
		FROM photographers
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list photographers", ErrInternal)
	}

	return photographers, nil
}

func (r *PhotographerRepository) ListByService(ctx context.Context, serviceID int64) ([]Photographer, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	photographers := make([]Photographer, 0)
	err := r.db.SelectContext(ctx2, &photographers, `
		SELECT p.id, p.external_id, p.name, p.description, p.portfolio_url
		FROM photographers p
		JOIN photographer_services ps ON p.id = ps.photographer_id
		WHERE ps.service_id = $1
		ORDER BY p.id
	`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: list photographers by service", ErrInternal)
	}

	return photographers, nil
}

// IDsByService returns photographer ids offering the service in ascending
// order. The order is what makes auto-assignment deterministic.
func (r *PhotographerRepository) IDsByService(ctx context.Context, serviceID int64) ([]int64, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ids := make([]int64, 0)
	err := r.db.SelectContext(ctx2, &ids, `
		SELECT p.id
		FROM photographers p
		JOIN photographer_services ps ON p.id = ps.photographer_id
		WHERE ps.service_id = $1
		ORDER BY p.id
	`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: photographer ids by service", ErrInternal)
	}

	return ids, nil
}

func (r *PhotographerRepository) Create(ctx context.Context, p *Photographer) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.GetContext(ctx2, &p.ID, `
		INSERT INTO photographers (external_id, name, description, portfolio_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, p.ExternalID, p.Name, p.Description, p.PortfolioURL)
	if err != nil {
		return fmt.Errorf("%w: create photographer", ErrInternal)
	}

	return nil
}

func (r *PhotographerRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	return r.updateColumn(ctx, id, "description", description)
}

func (r *PhotographerRepository) UpdatePortfolio(ctx context.Context, id int64, portfolioURL string) error {
	return r.updateColumn(ctx, id, "portfolio_url", portfolioURL)
}

func (r *PhotographerRepository) updateColumn(ctx context.Context, id int64, column, value string) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2,
		fmt.Sprintf(`UPDATE photographers SET %s = $2 WHERE id = $1`, column), id, value)
	if err != nil {
		return fmt.Errorf("%w: update photographer %s", ErrInternal, column)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PhotographerRepository) AssignService(ctx context.Context, photographerID, serviceID int64) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO photographer_services (photographer_id, service_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, photographerID, serviceID)
	if err != nil {
		return fmt.Errorf("%w: assign service", ErrInternal)
	}

	return nil
}

func (r *PhotographerRepository) UnassignService(ctx context.Context, photographerID, serviceID int64) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		DELETE FROM photographer_services
		WHERE photographer_id = $1 AND service_id = $2
	`, photographerID, serviceID)
	if err != nil {
		return fmt.Errorf("%w: unassign service", ErrInternal)
	}

	return nil
}
