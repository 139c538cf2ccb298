package api

import (
	"context"
	"io"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	// Signup регистрирует нового гостя и возвращает его вместе с токеном
	// подтверждения для доставки по почте.
	Signup(ctx context.Context, username, email, password string) (*entities.Guest, string, error)

	Login(ctx context.Context, email, password string) (*services.TokenPair, error)

	// RefreshTokens ротирует refresh-токен и выдает новую пару.
	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)

	Logout(ctx context.Context, refreshToken string) error

	// ConfirmEmail проверяет токен подтверждения и помечает почту гостя
	// как подтвержденную. Идемпотентно.
	ConfirmEmail(ctx context.Context, token string) error

	// CurrentGuest возвращает гостя по действительному access-токену.
	CurrentGuest(ctx context.Context, accessToken string) (*entities.Guest, error)
}

// GuestUseCase определяет основной порт для операций профиля гостя.
type GuestUseCase interface {
	GetProfile(ctx context.Context, email string) (*entities.Guest, error)

	// UpdateAvatar загружает изображение в медиахостинг и сохраняет
	// полученный URL у гостя.
	UpdateAvatar(ctx context.Context, email string, file io.Reader) (*entities.Guest, error)
}
