// Package middleware содержит HTTP middleware службы.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/ports/api"
	"contactdir/pkg/logger"
)

// guestLocalsKey - ключ locals fiber, хранящий аутентифицированного гостя.
const guestLocalsKey = "currentGuest"

const (
	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

// NewAuthMiddleware разрешает Bearer-токен в гостя и сохраняет его в locals
// запроса. Запросы без действительного токена отклоняются с 401.
func NewAuthMiddleware(authUseCase api.AuthUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": ErrorNoAuthHeader,
			})
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": ErrorInvalidTokenFormat,
			})
		}

		guest, err := authUseCase.CurrentGuest(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": ErrorInvalidToken,
			})
		}

		ctx.Locals(guestLocalsKey, guest)

		return ctx.Next()
	}
}

// GuestFromCtx возвращает гостя, разрешенного auth middleware.
func GuestFromCtx(ctx fiber.Ctx) (*entities.Guest, bool) {
	guest, ok := ctx.Locals(guestLocalsKey).(*entities.Guest)
	return guest, ok
}
