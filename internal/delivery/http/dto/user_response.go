package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	ExternalLink    string    `json:"external_link"`
	LinkTitle       string    `json:"link_title,omitempty"`
	LinkDescription string    `json:"link_description,omitempty"`
}
