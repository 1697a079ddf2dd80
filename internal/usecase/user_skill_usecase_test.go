package usecase

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/domain/skill"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type mockUserSkillRepo struct {
	items     []repository.UserSkill
	createErr error
	updateErr error
	deleteErr error

	created *repository.UserSkill
	deleted bool
}

func (m *mockUserSkillRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]repository.UserSkill, error) {
	return m.items, nil
}

func (m *mockUserSkillRepo) Create(ctx context.Context, us repository.UserSkill) (repository.UserSkill, error) {
	if m.createErr != nil {
		return repository.UserSkill{}, m.createErr
	}
	m.created = &us
	return us, nil
}

func (m *mockUserSkillRepo) UpdateLevel(ctx context.Context, userID, skillID uuid.UUID, level string) (repository.UserSkill, error) {
	if m.updateErr != nil {
		return repository.UserSkill{}, m.updateErr
	}
	return repository.UserSkill{UserID: userID, SkillID: skillID, ProficiencyLevel: level}, nil
}

func (m *mockUserSkillRepo) Delete(ctx context.Context, userID, skillID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = true
	return nil
}

type mockSkillRepo struct {
	exists    bool
	existsErr error
	skills    []skill.Skill
	createErr error
}

func (m *mockSkillRepo) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	return m.skills, nil
}

func (m *mockSkillRepo) CreateSkill(ctx context.Context, name, category string) (skill.Skill, error) {
	if m.createErr != nil {
		return skill.Skill{}, m.createErr
	}
	return skill.Skill{ID: uuid.New(), Name: name, Category: category}, nil
}

func (m *mockSkillRepo) SkillExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.exists, m.existsErr
}

func TestAddUserSkillRejectsInvalidLevel(t *testing.T) {
	uc := NewUserSkillUsecase(&mockUserSkillRepo{}, &mockSkillRepo{exists: true}, nil)

	_, err := uc.AddUserSkill(context.Background(), uuid.New(), uuid.New(), "Guru")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddUserSkillUnknownSkill(t *testing.T) {
	uc := NewUserSkillUsecase(&mockUserSkillRepo{}, &mockSkillRepo{exists: false}, nil)

	_, err := uc.AddUserSkill(context.Background(), uuid.New(), uuid.New(), skill.LevelBeginner)
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestAddUserSkillDuplicate(t *testing.T) {
	uc := NewUserSkillUsecase(
		&mockUserSkillRepo{createErr: repository.ErrUserSkillExists},
		&mockSkillRepo{exists: true},
		nil,
	)

	_, err := uc.AddUserSkill(context.Background(), uuid.New(), uuid.New(), skill.LevelExpert)
	if !errors.Is(err, ErrUserSkillExists) {
		t.Fatalf("expected ErrUserSkillExists, got %v", err)
	}
}

func TestAddUserSkillInvalidatesMatchCache(t *testing.T) {
	cache := newMockMatchCache()
	uc := NewUserSkillUsecase(&mockUserSkillRepo{}, &mockSkillRepo{exists: true}, cache)

	if _, err := uc.AddUserSkill(context.Background(), uuid.New(), uuid.New(), skill.LevelAdvanced); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != matchCacheKeyPattern {
		t.Fatalf("expected match cache invalidation, got %v", cache.deleted)
	}
}

func TestUpdateUserSkillNotFound(t *testing.T) {
	uc := NewUserSkillUsecase(
		&mockUserSkillRepo{updateErr: repository.ErrUserSkillNotFound},
		&mockSkillRepo{exists: true},
		nil,
	)

	_, err := uc.UpdateUserSkill(context.Background(), uuid.New(), uuid.New(), skill.LevelIntermediate)
	if !errors.Is(err, ErrUserSkillNotFound) {
		t.Fatalf("expected ErrUserSkillNotFound, got %v", err)
	}
}

func TestRemoveUserSkillInvalidatesMatchCache(t *testing.T) {
	cache := newMockMatchCache()
	repo := &mockUserSkillRepo{}
	uc := NewUserSkillUsecase(repo, &mockSkillRepo{exists: true}, cache)

	if err := uc.RemoveUserSkill(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.deleted {
		t.Fatalf("expected delete to reach repository")
	}
	if len(cache.deleted) != 1 {
		t.Fatalf("expected match cache invalidation, got %v", cache.deleted)
	}
}

func TestListMySkillsRequiresUser(t *testing.T) {
	uc := NewUserSkillUsecase(&mockUserSkillRepo{}, &mockSkillRepo{}, nil)

	if _, err := uc.ListMySkills(context.Background(), uuid.Nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
