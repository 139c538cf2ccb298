// Package cache определяет порт rate limiter-а поверх внешнего кэша.
package cache

import (
	"context"
	"time"
)

// Limiter считает запросы по ключу внутри фиксированного окна.
type Limiter interface {
	// Allow регистрирует обращение по ключу и сообщает, укладывается ли оно
	// в limit обращений за окно.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Close() error
}
