// Package http связывает HTTP маршруты службы справочника контактов.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"contactdir/internal/contacts/app/http/handlers"
	"contactdir/internal/contacts/app/http/middleware"
	"contactdir/internal/contacts/ports/api"
	"contactdir/internal/contacts/ports/cache"
)

// RouterDeps содержит все зависимости маршрутизатора.
type RouterDeps struct {
	Contacts api.ContactUseCase
	Guests   api.GuestUseCase
	Auth     api.AuthUseCase
	Health   handlers.Pinger
	Limiter  cache.Limiter

	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(app *fiber.App, deps RouterDeps) {
	contactsHandler := handlers.NewContactsHandler(deps.Contacts)
	findHandler := handlers.NewFindHandler(deps.Contacts)
	guestHandler := handlers.NewGuestHandler(deps.Guests)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	healthHandler := handlers.NewHealthHandler(deps.Health)

	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiGroup := app.Group("/api")

	apiGroup.Get("/healthchecker", healthHandler.Check)

	// Маршруты аутентификации (публичные).
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/signup", authHandler.Signup)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/confirm/:token", authHandler.ConfirmEmail)

	authMw := middleware.NewAuthMiddleware(deps.Auth)
	limitMw := middleware.NewRateLimitMiddleware(deps.Limiter, deps.RateLimitRequests, deps.RateLimitWindow)

	// Маршруты профиля гостя. Регистрируются до /users/:id, чтобы
	// статические сегменты побеждали.
	userRoutes := apiGroup.Group("/users", authMw)
	userRoutes.Get("/me", guestHandler.Me)
	userRoutes.Patch("/avatar", guestHandler.UpdateAvatar)

	// CRUD контактов, с ограничением частоты.
	userRoutes.Get("/", contactsHandler.List, limitMw)
	userRoutes.Post("/", contactsHandler.Create, limitMw)
	userRoutes.Get("/:id", contactsHandler.Get, limitMw)
	userRoutes.Put("/:id", contactsHandler.Update, limitMw)
	userRoutes.Delete("/:id", contactsHandler.Remove, limitMw)

	// Поиск и окно дней рождения.
	findRoutes := apiGroup.Group("/find", authMw)
	findRoutes.Get("/shift/:shift?", findHandler.Birthdays)
	findRoutes.Get("/:field/:value", findHandler.Search)

	// Неизвестные маршруты.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": "Route not found",
		})
	})
}
