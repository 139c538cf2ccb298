package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/internal/contacts/app/http/dto"
	"contactdir/internal/contacts/app/http/middleware"
	"contactdir/internal/contacts/ports/api"
	"contactdir/pkg/logger"
)

const (
	LogHandlerMe           = "guest handler: me"
	LogHandlerUpdateAvatar = "guest handler: update avatar"

	ErrorMissingFile = "file is required"
)

// GuestHandler обслуживает маршруты профиля гостя.
type GuestHandler struct {
	guests api.GuestUseCase
}

// NewGuestHandler создает новый обработчик гостя.
func NewGuestHandler(guests api.GuestUseCase) *GuestHandler {
	return &GuestHandler{guests: guests}
}

// Me обрабатывает GET /users/me.
func (h *GuestHandler) Me(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerMe)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewGuestResponse(guest))
}

// UpdateAvatar обрабатывает PATCH /users/avatar с multipart-загрузкой файла.
func (h *GuestHandler) UpdateAvatar(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerUpdateAvatar)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		log.Debug(requestCtx, ErrorMissingFile, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorMissingFile})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error(requestCtx, "failed to open uploaded file", zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidRequest})
	}
	defer file.Close()

	updated, err := h.guests.UpdateAvatar(requestCtx, guest.Email, file)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewGuestResponse(updated))
}
