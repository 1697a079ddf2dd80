package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	DisplayName  *string `json:"display_name"`
	Bio          *string `json:"bio"`
	ExternalLink *string `json:"external_link"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/profile", h.GetProfile)
	r.Put("/me/profile", h.UpdateProfile)
	r.Get("/users/:id/profile", h.GetUserProfile)
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(p))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		ExternalLink: req.ExternalLink,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(p))
}

// GetUserProfile serves another member's public profile, e.g. when inspecting
// a match before sending a connection request.
func (h *UserHandler) GetUserProfile(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(p))
}

func toProfileResponse(p user.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:          p.UserID,
		DisplayName:     p.DisplayName,
		Bio:             p.Bio,
		ExternalLink:    p.ExternalLink,
		LinkTitle:       p.LinkTitle,
		LinkDescription: p.LinkDescription,
	}
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
