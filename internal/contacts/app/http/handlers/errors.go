// Package handlers содержит HTTP обработчики API справочника контактов.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/domain/services"
)

// Общие сообщения ответов. Сбои нижних слоев не раскрывают деталей
// вызывающему; обернутая ошибка только логируется.
const (
	MsgInternalError = "internal server error"
	MsgNotFound      = "Not Found"
	MsgForbidden     = "Operation forbidden"
	MsgUnauthorized  = "invalid or missing credentials"
)

// respondError сопоставляет ошибку use case-а ее HTTP статусу и телу.
func respondError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entities.ErrContactNotFound) || errors.Is(err, entities.ErrGuestNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": MsgNotFound})
	case errors.Is(err, entities.ErrEmailAlreadyExists) || errors.Is(err, entities.ErrGuestEmailExists):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "Email is exists!"})
	case errors.Is(err, entities.ErrOperationForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": MsgForbidden})
	case errors.Is(err, entities.ErrInvalidCredentials),
		errors.Is(err, entities.ErrEmailNotConfirmed),
		errors.Is(err, entities.ErrInvalidToken),
		errors.Is(err, services.ErrInvalidRefreshToken):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": MsgUnauthorized})
	case isValidationError(err):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": MsgInternalError})
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, entities.ErrInvalidEmail) ||
		errors.Is(err, entities.ErrInvalidFirstName) ||
		errors.Is(err, entities.ErrInvalidLastName) ||
		errors.Is(err, entities.ErrInvalidPhone) ||
		errors.Is(err, entities.ErrInvalidInfo) ||
		errors.Is(err, entities.ErrInvalidID) ||
		errors.Is(err, entities.ErrNegativeShift) ||
		errors.Is(err, entities.ErrUnknownSearchField) ||
		errors.Is(err, entities.ErrEmptyUsername) ||
		errors.Is(err, services.ErrInvalidPassword)
}
