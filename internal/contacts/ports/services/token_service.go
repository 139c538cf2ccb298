// Package services определяет исходящие порты сервисов.
package services

import (
	"context"
	"time"

	"contactdir/internal/contacts/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, email string) (string, time.Time, error)

	GenerateRefreshToken(ctx context.Context, email string) (string, time.Time, error)

	// GenerateEmailToken выдает долгоживущий токен, встраиваемый в ссылку
	// подтверждения почты.
	GenerateEmailToken(ctx context.Context, email string) (string, error)

	// ValidateToken разбирает токен и проверяет подпись, срок действия и scope.
	ValidateToken(ctx context.Context, token, scope string) (*services.JWTClaims, error)
}
