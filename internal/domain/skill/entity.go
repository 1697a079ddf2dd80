package skill

import (
	"time"

	"github.com/google/uuid"
)

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// IsValidLevel reports whether label is one of the four proficiency labels.
func IsValidLevel(label string) bool {
	switch label {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

// UserSkill is one skill claimed by one user at one proficiency level.
// The store enforces at most one entry per (user, skill).
type UserSkill struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SkillID          uuid.UUID
	ProficiencyLevel string
	CreatedAt        time.Time
}
