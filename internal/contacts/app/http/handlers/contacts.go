package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/internal/contacts/app/http/dto"
	"contactdir/internal/contacts/app/http/middleware"
	"contactdir/internal/contacts/ports/api"
	"contactdir/pkg/logger"
)

const (
	LogHandlerListContacts  = "contacts handler: list"
	LogHandlerGetContact    = "contacts handler: get"
	LogHandlerCreateContact = "contacts handler: create"
	LogHandlerUpdateContact = "contacts handler: update"
	LogHandlerRemoveContact = "contacts handler: remove"

	ErrorInvalidRequest = "invalid request"
	ErrorInvalidID      = "id must be a positive integer"
	ErrorInvalidDate    = "birthday must be a date in the form YYYY-MM-DD"
	ErrorNotLoggedIn    = "authentication required"
)

// ContactsHandler обслуживает CRUD маршруты /users.
type ContactsHandler struct {
	contacts api.ContactUseCase
}

// NewContactsHandler создает новый обработчик контактов.
func NewContactsHandler(contacts api.ContactUseCase) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

func parseID(ctx fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func bindContact(ctx fiber.Ctx) (api.ContactInput, error) {
	var req dto.ContactRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return api.ContactInput{}, err
	}

	birthday, err := req.ParseBirthday()
	if err != nil {
		return api.ContactInput{}, err
	}

	return api.ContactInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Birthday:       birthday,
		AdditionalInfo: req.AdditionalInfo,
	}, nil
}

// List обрабатывает GET /users.
func (h *ContactsHandler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerListContacts)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	contacts, err := h.contacts.List(requestCtx, guest.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewContactListResponse(contacts))
}

// Get обрабатывает GET /users/:id.
func (h *ContactsHandler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerGetContact)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	id, ok := parseID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidID})
	}

	contact, err := h.contacts.Get(requestCtx, guest.Role, id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewContactResponse(contact))
}

// Create обрабатывает POST /users.
func (h *ContactsHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerCreateContact)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	input, err := bindContact(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidRequest})
	}

	created, err := h.contacts.Create(requestCtx, guest.Role, input)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.NewContactResponse(created))
}

// Update обрабатывает PUT /users/:id.
func (h *ContactsHandler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerUpdateContact)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	id, ok := parseID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidID})
	}

	input, err := bindContact(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidRequest})
	}

	updated, err := h.contacts.Update(requestCtx, guest.Role, id, input)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewContactResponse(updated))
}

// Remove обрабатывает DELETE /users/:id.
func (h *ContactsHandler) Remove(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRemoveContact)

	guest, ok := middleware.GuestFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": ErrorNotLoggedIn})
	}

	id, ok := parseID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidID})
	}

	if _, err := h.contacts.Remove(requestCtx, guest.Role, id); err != nil {
		return respondError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
