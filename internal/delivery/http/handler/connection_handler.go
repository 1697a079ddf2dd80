package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/connection"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	uc usecase.ConnectionUsecase
}

type sendConnectionRequest struct {
	AddresseeID uuid.UUID `json:"addressee_id"`
	Message     string    `json:"message"`
}

type respondConnectionRequest struct {
	Accept bool `json:"accept"`
}

func NewConnectionHandler(uc usecase.ConnectionUsecase) *ConnectionHandler {
	return &ConnectionHandler{uc: uc}
}

func (h *ConnectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/connections")
	grp.Get("/", h.List)
	grp.Post("/", h.Send)
	grp.Put("/:id", h.Respond)
}

func (h *ConnectionHandler) List(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}

	res := make([]dto.ConnectionResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toConnectionResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ConnectionHandler) Send(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req sendConnectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.SendRequest(c.Context(), userID, req.AddresseeID, req.Message)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toConnectionResponse(created))
}

func (h *ConnectionHandler) Respond(c fiber.Ctx) error {
	userID := middleware.UserIDFromCtx(c)
	if userID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req respondConnectionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Respond(c.Context(), userID, id, req.Accept)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toConnectionResponse(updated))
}

func toConnectionResponse(c connection.Connection) dto.ConnectionResponse {
	return dto.ConnectionResponse{
		ID:          c.ID,
		RequesterID: c.RequesterID,
		AddresseeID: c.AddresseeID,
		Status:      c.Status,
		Message:     c.Message,
		CreatedAt:   c.CreatedAt,
		RespondedAt: c.RespondedAt,
	}
}

func mapConnectionUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfConnection):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot connect to yourself", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrConnectionExists):
		return middleware.NewAppError(fiber.StatusConflict, "Connection already exists", nil, err)
	case errors.Is(err, usecase.ErrConnectionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Connection not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
