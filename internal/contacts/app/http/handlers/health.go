package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/pkg/logger"
)

const (
	LogHandlerHealth = "health handler: check"

	healthOKDetail   = "Welcome to the contact directory!"
	healthFailDetail = "Error connecting to the database"
)

// Pinger - часть базы данных, от которой зависит проверка здоровья.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обслуживает проверку живости.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler создает новый обработчик здоровья.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check обрабатывает GET /healthchecker опросом хранилища.
func (h *HealthHandler) Check(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerHealth)

	if err := h.db.Ping(requestCtx); err != nil {
		log.Error(requestCtx, "database ping failed", zap.Error(err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": healthFailDetail,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"message": healthOKDetail})
}
