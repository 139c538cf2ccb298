package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/internal/contacts/app/http/dto"
	"contactdir/internal/contacts/ports/api"
	"contactdir/pkg/logger"
)

const (
	LogHandlerSignup       = "auth handler: signup"
	LogHandlerLogin        = "auth handler: login"
	LogHandlerRefresh      = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout       = "auth handler: logout"
	LogHandlerConfirmEmail = "auth handler: confirm email"
)

// AuthHandler обслуживает маршруты /auth.
type AuthHandler struct {
	auth api.AuthUseCase
}

// NewAuthHandler создает новый обработчик аутентификации.
func NewAuthHandler(auth api.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup обрабатывает POST /auth/signup.
func (h *AuthHandler) Signup(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerSignup)

	var req dto.SignupRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidRequest})
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "username, email and password are required",
		})
	}

	guest, confirmToken, err := h.auth.Signup(requestCtx, req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	// Токен подтверждения возвращается в теле; доставка почты - внешняя
	// забота.
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"guest":              dto.NewGuestResponse(guest),
		"confirmation_token": confirmToken,
		"detail":             "Guest successfully created, confirm your email",
	})
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidRequest})
	}

	if req.Email == "" || req.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "email and password are required",
		})
	}

	pair, err := h.auth.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewTokenResponse(pair))
}

// Refresh обрабатывает POST /auth/refresh.
func (h *AuthHandler) Refresh(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidRequest})
	}

	if req.RefreshToken == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "refresh token is required",
		})
	}

	pair, err := h.auth.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.NewTokenResponse(pair))
}

// Logout обрабатывает POST /auth/logout.
func (h *AuthHandler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogout)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": ErrorInvalidRequest})
	}

	if req.RefreshToken == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "refresh token is required",
		})
	}

	if err := h.auth.Logout(requestCtx, req.RefreshToken); err != nil {
		return respondError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// ConfirmEmail обрабатывает GET /auth/confirm/:token.
func (h *AuthHandler) ConfirmEmail(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerConfirmEmail)

	token := ctx.Params("token")
	if token == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "confirmation token is required",
		})
	}

	if err := h.auth.ConfirmEmail(requestCtx, token); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"detail": "Email confirmed"})
}
