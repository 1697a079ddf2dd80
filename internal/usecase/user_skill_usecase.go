package usecase

import (
	"context"
	"errors"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrUserSkillNotFound = errors.New("user skill not found")
	ErrUserSkillExists   = errors.New("skill already added")
)

type UserSkillUsecase interface {
	ListMySkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error)
	AddUserSkill(ctx context.Context, userID, skillID uuid.UUID, level string) (repository.UserSkill, error)
	UpdateUserSkill(ctx context.Context, userID, skillID uuid.UUID, level string) (repository.UserSkill, error)
	RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type UserSkills struct {
	userSkills repository.UserSkillRepository
	skills     repository.SkillRepository
	cache      MatchCache
}

func NewUserSkillUsecase(userSkills repository.UserSkillRepository, skills repository.SkillRepository, cache MatchCache) *UserSkills {
	return &UserSkills{userSkills: userSkills, skills: skills, cache: cache}
}

func (u *UserSkills) ListMySkills(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *UserSkills) AddUserSkill(ctx context.Context, userID, skillID uuid.UUID, level string) (repository.UserSkill, error) {
	if userID == uuid.Nil {
		return repository.UserSkill{}, ErrUnauthorized
	}
	if skillID == uuid.Nil || !skill.IsValidLevel(level) {
		return repository.UserSkill{}, ErrInvalidInput
	}

	exists, err := u.skills.SkillExistsByID(ctx, skillID)
	if err != nil {
		return repository.UserSkill{}, ErrInternal
	}
	if !exists {
		return repository.UserSkill{}, ErrSkillNotFound
	}

	created, err := u.userSkills.Create(ctx, repository.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillID:          skillID,
		ProficiencyLevel: level,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillExists) {
			return repository.UserSkill{}, ErrUserSkillExists
		}
		return repository.UserSkill{}, ErrInternal
	}

	u.invalidateMatches(ctx)
	return created, nil
}

func (u *UserSkills) UpdateUserSkill(ctx context.Context, userID, skillID uuid.UUID, level string) (repository.UserSkill, error) {
	if userID == uuid.Nil {
		return repository.UserSkill{}, ErrUnauthorized
	}
	if skillID == uuid.Nil || !skill.IsValidLevel(level) {
		return repository.UserSkill{}, ErrInvalidInput
	}

	updated, err := u.userSkills.UpdateLevel(ctx, userID, skillID, level)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return repository.UserSkill{}, ErrUserSkillNotFound
		}
		return repository.UserSkill{}, ErrInternal
	}

	u.invalidateMatches(ctx)
	return updated, nil
}

func (u *UserSkills) RemoveUserSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if skillID == uuid.Nil {
		return ErrInvalidInput
	}

	if err := u.userSkills.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}

	u.invalidateMatches(ctx)
	return nil
}

// Any skill edit can reshuffle every member's ranking, so the whole match
// cache goes, not just this user's entry.
func (u *UserSkills) invalidateMatches(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, matchCacheKeyPattern)
}
