package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileWithSkills is the read model the match engine consumes: one user's
// public profile plus their full skill list, name-ordered.
type ProfileWithSkills struct {
	UserID       uuid.UUID
	DisplayName  string
	Bio          string
	ExternalLink string
	Skills       []UserSkill
}

type MatchProfileRepository interface {
	// FindProfileWithSkills returns ErrUserNotFound when no such user exists.
	FindProfileWithSkills(ctx context.Context, userID uuid.UUID) (ProfileWithSkills, error)

	// ListOtherProfilesWithSkills returns every profile except the excluded
	// user, in ascending registration order. The order is the match
	// tie-break, so it must be stable across calls.
	ListOtherProfilesWithSkills(ctx context.Context, excludeUserID uuid.UUID) ([]ProfileWithSkills, error)
}

type PostgresMatchProfileRepository struct {
	db database.DB
}

func NewPostgresMatchProfileRepository(db database.DB) *PostgresMatchProfileRepository {
	return &PostgresMatchProfileRepository{db: db}
}

func (r *PostgresMatchProfileRepository) FindProfileWithSkills(ctx context.Context, userID uuid.UUID) (ProfileWithSkills, error) {
	row := r.db.QueryRow(ctx,
		`SELECT u.id, COALESCE(p.display_name, ''), COALESCE(p.bio, ''), COALESCE(p.external_link, '')
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id = $1`,
		userID,
	)

	var out ProfileWithSkills
	if err := row.Scan(&out.UserID, &out.DisplayName, &out.Bio, &out.ExternalLink); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return ProfileWithSkills{}, ErrUserNotFound
		}
		return ProfileWithSkills{}, err
	}

	skills, err := r.skillsByUser(ctx, userID)
	if err != nil {
		return ProfileWithSkills{}, err
	}
	out.Skills = skills
	return out, nil
}

func (r *PostgresMatchProfileRepository) ListOtherProfilesWithSkills(ctx context.Context, excludeUserID uuid.UUID) ([]ProfileWithSkills, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, COALESCE(p.display_name, ''), COALESCE(p.bio, ''), COALESCE(p.external_link, '')
		 FROM users u
		 LEFT JOIN profiles p ON p.user_id = u.id
		 WHERE u.id <> $1
		 ORDER BY u.created_at ASC, u.id ASC`,
		excludeUserID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProfileWithSkills, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var p ProfileWithSkills
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.Bio, &p.ExternalLink); err != nil {
			return nil, err
		}
		p.Skills = make([]UserSkill, 0)
		index[p.UserID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, s.category, us.proficiency_level
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id <> $1
		 ORDER BY us.user_id, s.name ASC`,
		excludeUserID,
	)
	if err != nil {
		return nil, err
	}
	defer srows.Close()

	for srows.Next() {
		var us UserSkill
		if err := srows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.SkillCategory, &us.ProficiencyLevel); err != nil {
			return nil, err
		}
		if i, ok := index[us.UserID]; ok {
			out[i].Skills = append(out[i].Skills, us)
		}
	}
	if err := srows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *PostgresMatchProfileRepository) skillsByUser(ctx context.Context, userID uuid.UUID) ([]UserSkill, error) {
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
