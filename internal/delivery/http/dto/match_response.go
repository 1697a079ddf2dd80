package dto

import "github.com/google/uuid"

type MatchResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	Bio          string    `json:"bio,omitempty"`
	MatchScore   int       `json:"match_score"`
	TheyCanTeach []string  `json:"they_can_teach"`
	YouCanTeach  []string  `json:"you_can_teach"`
	Explanation  string    `json:"explanation"`
}

type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
	Total   int             `json:"total"`
	Message string          `json:"message,omitempty"`
}
