package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/database"
	"skillswap/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrSkillAlreadyExists = errors.New("skill already exists")
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name, category string) (skill.Skill, error)
	SkillExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, created_at FROM skills ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	id := uuid.New()
	affected, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO NOTHING`,
		id, name, category,
	)
	if err != nil {
		return skill.Skill{}, err
	}
	if affected == 0 {
		return skill.Skill{}, ErrSkillAlreadyExists
	}

	row := r.db.QueryRow(ctx, `SELECT id, name, category, created_at FROM skills WHERE id = $1`, id)
	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) SkillExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
