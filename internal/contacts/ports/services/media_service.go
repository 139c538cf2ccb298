package services

import (
	"context"
	"io"
)

// MediaService загружает изображения аватаров во внешний медиахостинг и
// возвращает URL доставки.
type MediaService interface {
	// UploadAvatar сохраняет изображение под именем, производным от почты
	// гостя, и возвращает публичный URL уменьшенного аватара.
	UploadAvatar(ctx context.Context, email string, file io.Reader) (string, error)
}
