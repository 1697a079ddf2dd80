package usecase

import (
	"context"
	"errors"
	"strings"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"
)

var ErrSkillAlreadyExists = errors.New("skill already exists")

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, name, category string) (skill.Skill, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return skill.Skill{}, ErrInvalidInput
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "General"
	}

	created, err := u.repo.CreateSkill(ctx, name, category)
	if err != nil {
		if errors.Is(err, repository.ErrSkillAlreadyExists) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}
