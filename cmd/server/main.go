// Package main реализует точку входа службы справочника контактов.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"contactdir/internal/contacts/adapters/cache"
	"contactdir/internal/contacts/adapters/postgres"
	"contactdir/internal/contacts/adapters/services"
	"contactdir/internal/contacts/app"
	httpServer "contactdir/internal/contacts/app/http"
	"contactdir/internal/contacts/config"
	pgdb "contactdir/pkg/db/postgres"
	"contactdir/pkg/logger"
	"contactdir/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "CONTACTS_LOGGER_MODE"
	EnvLoggerLevel = "CONTACTS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectDatabase      = "failed to connect to database"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrCreateRedisLimiter   = "failed to create Redis rate limiter"
	ErrCreateMediaService   = "failed to create media service"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "contact directory service started"
	LogServiceShutdownDone = "contact directory service shutdown complete"
	LogApplyingMigrations  = "applying database migrations"
	LogInitRepositories    = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitLimiter         = "initializing rate limiter"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDatabase     = "closing database connection"
	LogClosingLimiter      = "closing rate limiter connection"
)

const bcryptCost = 12

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		db, err := pgdb.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogApplyingMigrations)
		if err := pgdb.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), cfg.Postgres.MigrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitLimiter)
		limiter, err := cache.NewRedisLimiter(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisLimiter, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepositories)
		repos := postgres.NewRepositoryFactory(db.Pool())

		log.Info(ctx, LogInitServices)
		svcFactory := services.NewServiceFactory(&cfg.JWT, bcryptCost)

		mediaSvc, err := services.NewCloudinary(&cfg.Cloudinary)
		if err != nil {
			log.Error(ctx, ErrCreateMediaService, zap.Error(err))
			exitCode = 1
			return
		}

		defaultAvatar := func(email string) string {
			return services.GravatarURL(email, 250)
		}

		contactUseCase := app.NewContactUseCase(repos.ContactRepository())
		authUseCase := app.NewAuthUseCase(repos.GuestRepository(), svcFactory.PasswordService(), svcFactory.TokenService(), defaultAvatar)
		guestUseCase := app.NewGuestUseCase(repos.GuestRepository(), mediaSvc)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, httpServer.RouterDeps{
			Contacts:          contactUseCase,
			Guests:            guestUseCase,
			Auth:              authUseCase,
			Health:            db,
			Limiter:           limiter,
			RateLimitRequests: cfg.RateLimit.Requests,
			RateLimitWindow:   cfg.RateLimit.Window,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingLimiter)
				return limiter.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				db.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
