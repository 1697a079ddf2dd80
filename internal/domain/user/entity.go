package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	UserID       uuid.UUID
	DisplayName  string
	Bio          string
	ExternalLink string

	// Filled best-effort from the external link's page metadata.
	LinkTitle       string
	LinkDescription string

	UpdatedAt time.Time
}
