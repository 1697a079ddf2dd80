package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/connection"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrConnectionExists   = errors.New("connection already exists")
)

type ConnectionRepository interface {
	Create(ctx context.Context, c connection.Connection) (connection.Connection, error)
	GetByID(ctx context.Context, id uuid.UUID) (connection.Connection, error)
	UpdateStatus(ctx context.Context, id, addresseeID uuid.UUID, status string) (connection.Connection, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]connection.Connection, error)
	ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type PostgresConnectionRepository struct {
	db database.DB
}

func NewPostgresConnectionRepository(db database.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

func (r *PostgresConnectionRepository) Create(ctx context.Context, c connection.Connection) (connection.Connection, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO connections (id, requester_id, addressee_id, status, message)
		 SELECT $1, $2, $3, $4, $5
		 WHERE NOT EXISTS (
			SELECT 1 FROM connections
			WHERE (requester_id = $2 AND addressee_id = $3)
			   OR (requester_id = $3 AND addressee_id = $2)
		 )`,
		c.ID, c.RequesterID, c.AddresseeID, c.Status, c.Message,
	)
	if err != nil {
		return connection.Connection{}, err
	}
	if affected == 0 {
		return connection.Connection{}, ErrConnectionExists
	}
	return r.GetByID(ctx, c.ID)
}

func (r *PostgresConnectionRepository) GetByID(ctx context.Context, id uuid.UUID) (connection.Connection, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, requester_id, addressee_id, status, message, created_at, responded_at
		 FROM connections WHERE id = $1`,
		id,
	)
	return scanConnection(row)
}

func (r *PostgresConnectionRepository) UpdateStatus(ctx context.Context, id, addresseeID uuid.UUID, status string) (connection.Connection, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE connections
		 SET status = $1, responded_at = now()
		 WHERE id = $2 AND addressee_id = $3 AND status = $4`,
		status, id, addresseeID, connection.StatusPending,
	)
	if err != nil {
		return connection.Connection{}, err
	}
	if affected == 0 {
		return connection.Connection{}, ErrConnectionNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresConnectionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]connection.Connection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, requester_id, addressee_id, status, message, created_at, responded_at
		 FROM connections
		 WHERE requester_id = $1 OR addressee_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]connection.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresConnectionRepository) ExistsBetween(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM connections
			WHERE (requester_id = $1 AND addressee_id = $2)
			   OR (requester_id = $2 AND addressee_id = $1)
		)`,
		a, b,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type connectionRow interface {
	Scan(dest ...any) error
}

func scanConnection(row connectionRow) (connection.Connection, error) {
	var c connection.Connection
	if err := row.Scan(&c.ID, &c.RequesterID, &c.AddresseeID, &c.Status, &c.Message, &c.CreatedAt, &c.RespondedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return connection.Connection{}, ErrConnectionNotFound
		}
		return connection.Connection{}, err
	}
	return c, nil
}
