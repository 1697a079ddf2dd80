package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/matches", h.GetMatches)
}

// GetMatches returns the requester's ranked recommendations. Degenerate
// cases (no skills yet, nobody qualifies) are still 200s with a guidance
// message, not errors.
func (h *MatchHandler) GetMatches(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	list, err := h.uc.GetMatches(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	res := dto.MatchListResponse{
		Matches: make([]dto.MatchResponse, 0, len(list.Matches)),
		Total:   list.Total,
		Message: list.Message,
	}
	for _, m := range list.Matches {
		res.Matches = append(res.Matches, dto.MatchResponse{
			UserID:       m.UserID,
			DisplayName:  m.DisplayName,
			Bio:          m.Bio,
			MatchScore:   m.MatchScore,
			TheyCanTeach: m.TheyCanTeach,
			YouCanTeach:  m.YouCanTeach,
			Explanation:  m.Explanation,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
