package middleware

import (
	"errors"
	"strings"

	"skillswap/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)

		return c.Next()
	}
}

// UserIDFromCtx returns the authenticated user's id, or uuid.Nil when the
// request did not pass the auth middleware.
func UserIDFromCtx(c fiber.Ctx) uuid.UUID {
	v := c.Locals(CtxUserIDKey)
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
