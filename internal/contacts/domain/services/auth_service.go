// Package services содержит доменные типы, общие для сервисов аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication tokens")
)

// TokenPair представляет пару токенов аутентификации.
type TokenPair struct {
	GuestID      int64
	Username     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
