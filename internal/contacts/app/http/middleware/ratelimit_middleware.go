package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/internal/contacts/ports/cache"
	"contactdir/pkg/logger"
)

const (
	msgRateLimited   = "request rate limited"
	msgLimiterFailed = "rate limiter unavailable, letting request through"

	rateLimitDetail = "Too Many Requests"
)

// NewRateLimitMiddleware применяет лимит запросов с фиксированным окном на
// пару IP клиента и маршрут. При недоступности limiter-а запрос проходит;
// доступность API важнее строгости лимита.
func NewRateLimitMiddleware(limiter cache.Limiter, requests int, window time.Duration) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "ratelimit"))

		key := "ratelimit:" + ctx.IP() + ":" + ctx.Route().Path

		allowed, err := limiter.Allow(requestCtx, key, requests, window)
		if err != nil {
			log.Warn(requestCtx, msgLimiterFailed, zap.Error(err))
			return ctx.Next()
		}

		if !allowed {
			log.Debug(requestCtx, msgRateLimited, zap.String("key", key))
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": rateLimitDetail,
			})
		}

		return ctx.Next()
	}
}
