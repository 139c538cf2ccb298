// Package cache реализует rate limiter на Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"contactdir/internal/contacts/config"
	"contactdir/internal/contacts/ports/cache"
	"contactdir/pkg/logger"
)

const (
	ErrorFailedToCount = "failed to count request in redis"
	ErrorFailedToClose = "failed to close redis connection"
)

// RedisLimiter реализует порт Limiter счетчиком с фиксированным окном:
// INCR по ключу, EXPIRE ставится на первом обращении окна.
type RedisLimiter struct {
	client *redis.Client
}

// NewRedisLimiter создает новый rate limiter поверх Redis.
func NewRedisLimiter(ctx context.Context, cfg *config.RedisConfig) (cache.Limiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLimiter{client: client}, nil
}

// NewRedisLimiterWithClient оборачивает существующий клиент. Используется тестами.
func NewRedisLimiterWithClient(client *redis.Client) cache.Limiter {
	return &RedisLimiter{client: client}
}

// Allow регистрирует обращение по ключу и сообщает, укладывается ли оно
// в лимит окна.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", "Allow"), zap.String("key", key))

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	// NX держит окно фиксированным: TTL ставится один раз при появлении ключа.
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Error(ctx, ErrorFailedToCount, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCount, err)
	}

	return count.Val() <= int64(limit), nil
}

// Close закрывает соединение с Redis.
func (l *RedisLimiter) Close() error {
	if err := l.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
