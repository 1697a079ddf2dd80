package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(ctx context.Context, u user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpsertProfile(ctx context.Context, p user.Profile) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		u.ID, u.Email, u.PasswordHash,
	)
	return err
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT u.id,
		        COALESCE(p.display_name, ''),
		        COALESCE(p.bio, ''),
		        COALESCE(p.external_link, ''),
		        COALESCE(p.link_title, ''),
		        COALESCE(p.link_description, ''),
		        COALESCE(p.updated_at, u.updated_at)
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = $1`,
		userID,
	)

	var p user.Profile
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.Bio, &p.ExternalLink, &p.LinkTitle, &p.LinkDescription, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{}, ErrUserNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresUserRepository) UpsertProfile(ctx context.Context, p user.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (user_id, display_name, bio, external_link, link_title, link_description, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			external_link = EXCLUDED.external_link,
			link_title = EXCLUDED.link_title,
			link_description = EXCLUDED.link_description,
			updated_at = now()`,
		p.UserID, p.DisplayName, p.Bio, p.ExternalLink, p.LinkTitle, p.LinkDescription,
	)
	return err
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
