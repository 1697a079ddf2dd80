package ws

import (
	"log"
	"net/http"
	"strings"

	"skillswap/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub    *Hub
	jwt    jwt.Service
	logger *log.Logger
}

func NewHandler(hub *Hub, jwtSvc jwt.Service, logger *log.Logger) *Handler {
	return &Handler{hub: hub, jwt: jwtSvc, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleEventsWS upgrades the connection and registers it under the token's
// user. Browsers cannot set an Authorization header on a websocket dial, so
// the access token is read from the "token" query parameter instead.
func (h *Handler) HandleEventsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	userID, ok := h.authenticate(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("WS upgrade error | error=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func (h *Handler) authenticate(c fiber.Ctx) (uuid.UUID, bool) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return uuid.Nil, false
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, false
	}
	if claims.TokenType != jwt.TokenTypeAccess || claims.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
