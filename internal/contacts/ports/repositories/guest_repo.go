package repositories

import (
	"context"

	"contactdir/internal/contacts/domain/entities"
)

// GuestRepository определяет интерфейс для операций сохранения учетных записей.
type GuestRepository interface {
	FindByID(ctx context.Context, id int64) (*entities.Guest, error)

	FindByEmail(ctx context.Context, email string) (*entities.Guest, error)

	Create(ctx context.Context, guest *entities.Guest) (*entities.Guest, error)

	// UpdateRefreshToken ротирует сохраненный refresh-токен. Пустой токен
	// очищает его (logout).
	UpdateRefreshToken(ctx context.Context, guestID int64, refreshToken string) error

	// UpdateAvatar заменяет URL аватара по почте гостя и возвращает
	// обновленный снимок.
	UpdateAvatar(ctx context.Context, email, avatarURL string) (*entities.Guest, error)

	// ConfirmEmail помечает почту гостя как подтвержденную. Идемпотентно.
	ConfirmEmail(ctx context.Context, email string) error
}
