package dto

import (
	"time"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/domain/services"
)

// SignupRequest содержит данные регистрации гостя.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные входа гостя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest содержит refresh-токен вызовов refresh/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse - проводная форма выданной пары токенов.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewTokenResponse преобразует доменную пару токенов в проводную форму.
func NewTokenResponse(pair *services.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresAt:    pair.ExpiresAt,
	}
}

// GuestResponse - разрешенная проводная форма гостя.
type GuestResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Roles    string `json:"roles"`
}

// NewGuestResponse преобразует доменного гостя в проводную форму.
func NewGuestResponse(g *entities.Guest) GuestResponse {
	return GuestResponse{
		ID:       g.ID,
		Username: g.Username,
		Email:    g.Email,
		Avatar:   g.Avatar,
		Roles:    g.Role.String(),
	}
}
