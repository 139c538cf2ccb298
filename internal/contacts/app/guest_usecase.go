package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"contactdir/internal/contacts/domain/entities"
	"contactdir/internal/contacts/ports/api"
	"contactdir/internal/contacts/ports/repositories"
	svc "contactdir/internal/contacts/ports/services"
	"contactdir/pkg/logger"
)

const (
	methodGetProfile   = "GetProfile"
	methodUpdateAvatar = "UpdateAvatar"

	msgFetchingProfile = "fetching guest profile"
	msgUploadingAvatar = "uploading guest avatar"
	msgAvatarUpdated   = "guest avatar updated"

	msgErrUploadAvatar = "failed to upload avatar"
	msgErrStoreAvatar  = "failed to store avatar url"

	errCtxFetchingProfile = "fetching guest profile"
	errCtxUploadingAvatar = "uploading avatar"
	errCtxStoringAvatar   = "storing avatar url"
)

// GuestUseCaseImpl реализует порт GuestUseCase.
type GuestUseCaseImpl struct {
	guestRepo repositories.GuestRepository
	mediaSvc  svc.MediaService
}

// NewGuestUseCase создает новый use case профиля гостя.
func NewGuestUseCase(guestRepo repositories.GuestRepository, mediaSvc svc.MediaService) api.GuestUseCase {
	return &GuestUseCaseImpl{
		guestRepo: guestRepo,
		mediaSvc:  mediaSvc,
	}
}

// GetProfile возвращает гостя по почте.
func (u *GuestUseCaseImpl) GetProfile(ctx context.Context, email string) (*entities.Guest, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetProfile), zap.String("email", email))
	log.Debug(ctx, msgFetchingProfile)

	guest, err := u.guestRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, entities.ErrGuestNotFound) {
			log.Error(ctx, msgErrFindingGuest, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	return guest, nil
}

// UpdateAvatar загружает изображение в медиахостинг и сохраняет полученный
// URL у гостя. Повторные загрузки того же гостя перезаписывают прежний аватар.
func (u *GuestUseCaseImpl) UpdateAvatar(ctx context.Context, email string, file io.Reader) (*entities.Guest, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateAvatar), zap.String("email", email))
	log.Debug(ctx, msgUploadingAvatar)

	url, err := u.mediaSvc.UploadAvatar(ctx, email, file)
	if err != nil {
		log.Error(ctx, msgErrUploadAvatar, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUploadingAvatar, err)
	}

	guest, err := u.guestRepo.UpdateAvatar(ctx, email, url)
	if err != nil {
		if !errors.Is(err, entities.ErrGuestNotFound) {
			log.Error(ctx, msgErrStoreAvatar, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxStoringAvatar, err)
	}

	log.Info(ctx, msgAvatarUpdated, zap.Int64("guestID", guest.ID))
	return guest, nil
}
