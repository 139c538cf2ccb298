package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/internal/contacts/app/http/dto"
	"contactdir/internal/contacts/app/http/middleware"
	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/ports/api"
	"contactdir/pkg/logger"
)

const (
	LogHandlerSearch    = "find handler: search"
	LogHandlerBirthdays = "find handler: birthday list"

	ErrorUnknownField = "unknown search field"
	ErrorInvalidShift = "shift must be a non-negative integer"
)

// FindHandler обслуживает маршруты /find.
type FindHandler struct {
	contacts api.ContactUseCase
}

// NewFindHandler создает новый обработчик поиска.
func NewFindHandler(contacts api.ContactUseCase) *FindHandler {
	return &FindHandler{contacts: contacts}
}

// Search обрабатывает GET /find/:field/:value. Неизвестные поля - плохой
// запрос, а не молчаливый промах.
func (h *FindHandler) Search(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSearch)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	field, err := entities.ParseSearchField(ctx.Params("field"))
	if err != nil {
		log.Debug(requestCtx, ErrorUnknownField, zap.String("field", ctx.Params("field")))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorUnknownField})
	}

	contact, err := h.contacts.Search(requestCtx, guest.Role, field, ctx.Params("value"))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewContactResponse(contact))
}

// Birthdays обрабатывает GET /find/shift/:shift. Отсутствующий shift по
// умолчанию ноль и совпадает только с сегодняшними днями рождения.
func (h *FindHandler) Birthdays(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerBirthdays)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	shift := 0
	if raw := ctx.Params("shift"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			log.Debug(requestCtx, ErrorInvalidShift, zap.String("shift", raw))
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidShift})
		}
		shift = parsed
	}

	contacts, err := h.contacts.UpcomingBirthdays(requestCtx, guest.Role, shift)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewContactListResponse(contacts))
}
