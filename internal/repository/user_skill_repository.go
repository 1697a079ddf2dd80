package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserSkillNotFound = errors.New("user skill not found")
	ErrUserSkillExists   = errors.New("user skill already exists")
)

// UserSkill is a user's skill entry with the catalog name joined in.
type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	SkillName        string
	SkillCategory    string
	ProficiencyLevel string
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error)
	Create(ctx context.Context, us UserSkill) (UserSkill, error)
	UpdateLevel(ctx context.Context, userID, skillID uuid.UUID, level string) (UserSkill, error)
	Delete(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, s.category, us.proficiency_level
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSkill, 0)
	for rows.Next() {
		var us UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.SkillCategory, &us.ProficiencyLevel); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us UserSkill) (UserSkill, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency_level)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, skill_id) DO NOTHING`,
		us.ID, us.UserID, us.SkillID, us.ProficiencyLevel,
	)
	if err != nil {
		return UserSkill{}, err
	}
	if affected == 0 {
		return UserSkill{}, ErrUserSkillExists
	}
	return r.findByUserAndSkill(ctx, us.UserID, us.SkillID)
}

func (r *PostgresUserSkillRepository) UpdateLevel(ctx context.Context, userID, skillID uuid.UUID, level string) (UserSkill, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE user_skills SET proficiency_level = $1 WHERE user_id = $2 AND skill_id = $3`,
		level, userID, skillID,
	)
	if err != nil {
		return UserSkill{}, err
	}
	if affected == 0 {
		return UserSkill{}, ErrUserSkillNotFound
	}
	return r.findByUserAndSkill(ctx, userID, skillID)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *PostgresUserSkillRepository) findByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (UserSkill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, s.category, us.proficiency_level
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	)

	var us UserSkill
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.SkillCategory, &us.ProficiencyLevel); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return UserSkill{}, ErrUserSkillNotFound
		}
		return UserSkill{}, err
	}
	return us, nil
}
