package seeder

import (
	"context"
	"fmt"

	"skillswap/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

// Run inserts the starter skill catalog. Members can add more through the
// API; seeding just gives a fresh install something to match on.
func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "Go", Category: "Programming"},
		{Name: "Python", Category: "Programming"},
		{Name: "JavaScript", Category: "Programming"},
		{Name: "React", Category: "Programming"},
		{Name: "SQL", Category: "Programming"},
		{Name: "UI Design", Category: "Design"},
		{Name: "Figma", Category: "Design"},
		{Name: "Illustration", Category: "Design"},
		{Name: "Photography", Category: "Creative"},
		{Name: "Video Editing", Category: "Creative"},
		{Name: "Creative Writing", Category: "Creative"},
		{Name: "Public Speaking", Category: "Communication"},
		{Name: "English", Category: "Language"},
		{Name: "Spanish", Category: "Language"},
		{Name: "Japanese", Category: "Language"},
		{Name: "Guitar", Category: "Music"},
		{Name: "Piano", Category: "Music"},
		{Name: "Cooking", Category: "Lifestyle"},
		{Name: "Yoga", Category: "Lifestyle"},
		{Name: "Chess", Category: "Games"},
	}

	for _, it := range items {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
