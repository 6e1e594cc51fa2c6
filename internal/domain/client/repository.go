package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	GetByExternalID(ctx context.Context, externalID int64) (*Client, error)
	GetByID(ctx context.Context, id int64) (*Client, error)
	Upsert(ctx context.Context, externalID int64, name, handle string) (*Client, error)
	UpdateName(ctx context.Context, externalID int64, name string) error
	Archive(ctx context.Context, externalID int64) error
}

// ClientRepository provides client storage backed by PostgreSQL.
type ClientRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) GetByExternalID(ctx context.Context, externalID int64) (*Client, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Client
	err := r.db.GetContext(ctx2, &c, `
		SELECT id, external_id, name, handle, created_at
		FROM clients
		WHERE external_id = $1
	`, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get client by external id", ErrInternal)
	}

	return &c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*Client, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Client
	err := r.db.GetContext(ctx2, &c, `
		SELECT id, external_id, name, handle, created_at
		FROM clients
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get client by id", ErrInternal)
	}

	return &c, nil
}

// Upsert creates the client or refreshes name/handle when the external
// identity is already registered. A repeated registration never produces
// a duplicate row.
func (r *ClientRepository) Upsert(ctx context.Context, externalID int64, name, handle string) (*Client, error) {
	if len(strings.TrimSpace(name)) < 2 {
		return nil, ErrNameTooShort
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Client
	err := r.db.GetContext(ctx2, &c, `
		INSERT INTO clients (external_id, name, handle)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_id) DO UPDATE SET name = $2, handle = $3
		RETURNING id, external_id, name, handle, created_at
	`, externalID, name, handle)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert client", ErrInternal)
	}

	return &c, nil
}

func (r *ClientRepository) UpdateName(ctx context.Context, externalID int64, name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrNameTooShort
	}

	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2, `
		UPDATE clients SET name = $2 WHERE external_id = $1
	`, externalID, name)
	if err != nil {
		return fmt.Errorf("%w: update client name", ErrInternal)
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

// Archive moves the active client row into archived_clients. The name and
// handle are preserved in the archive; the active row is removed so the
// identity re-enters registration on next contact.
func (r *ClientRepository) Archive(ctx context.Context, externalID int64) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx2, `
		INSERT INTO archived_clients (external_id, name, handle)
		SELECT external_id, name, handle FROM clients WHERE external_id = $1
	`, externalID)
	if err != nil {
		return fmt.Errorf("%w: archive client", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx2, `DELETE FROM clients WHERE external_id = $1`, externalID); err != nil {
		return fmt.Errorf("%w: delete client", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return nil
}
