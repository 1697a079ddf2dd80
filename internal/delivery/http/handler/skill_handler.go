package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type addSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.List)
	r.Post("/skills", h.Add)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	skills, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		res = append(res, dto.SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Add(c fiber.Ctx) error {
	var req addSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddSkill(c.Context(), req.Name, req.Category)
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := dto.SkillResponse{ID: created.ID, Name: created.Name, Category: created.Category}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, res)
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillAlreadyExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
