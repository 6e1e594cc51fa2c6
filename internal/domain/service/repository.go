package service

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
	GetByID(ctx context.Context, id int64) (*Service, error)
	List(ctx context.Context) ([]Service, error)
	Create(ctx context.Context, s *Service) error
}

// ServiceRepository provides catalog storage backed by PostgreSQL.
type ServiceRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*Service, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s Service
	err := r.db.GetContext(ctx2, &s, `
		SELECT id, name, cost, duration, comment
		FROM services
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get service by id", ErrInternal)
	}

	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]Service, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	services := make([]Service, 0)
	err := r.db.SelectContext(ctx2, &services, `
		SELECT id, name, cost, duration, comment
		FROM services
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list services", ErrInternal)
	}

	return services, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *Service) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.GetContext(ctx2, &s.ID, `
		INSERT INTO services (name, cost, duration, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, s.Name, s.Cost, s.Duration, s.Comment)
	if err != nil {
		return fmt.Errorf("%w: create service", ErrInternal)
	}

	return nil
}
