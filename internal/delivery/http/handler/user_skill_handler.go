package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addUserSkillRequest struct {
	SkillID          uuid.UUID `json:"skill_id"`
	ProficiencyLevel string    `json:"proficiency_level"`
}

type updateUserSkillRequest struct {
	ProficiencyLevel string `json:"proficiency_level"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:skillId", h.Update)
	grp.Delete("/:skillId", h.Delete)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListMySkills(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	res := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toUserSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) Add(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddUserSkill(c.Context(), userID, req.SkillID, req.ProficiencyLevel)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toUserSkillResponse(created))
}

func (h *UserSkillHandler) Update(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateUserSkill(c.Context(), userID, skillID, req.ProficiencyLevel)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toUserSkillResponse(updated))
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RemoveUserSkill(c.Context(), userID, skillID); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toUserSkillResponse(it repository.UserSkill) dto.UserSkillResponse {
	return dto.UserSkillResponse{
		ID:               it.ID,
		SkillID:          it.SkillID,
		SkillName:        it.SkillName,
		SkillCategory:    it.SkillCategory,
		ProficiencyLevel: it.ProficiencyLevel,
	}
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not in your profile", nil, err)
	case errors.Is(err, usecase.ErrUserSkillExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already added", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill or proficiency level", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
