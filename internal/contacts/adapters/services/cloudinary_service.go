package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"contactdir/internal/contacts/config"
	svc "contactdir/internal/contacts/ports/services"
	"contactdir/pkg/logger"
)

const (
	avatarNameLength = 12
	avatarSize       = 250

	errCtxInitCloudinary = "initializing cloudinary"
	errCtxUploadingImage = "uploading image"
	errCtxBuildingURL    = "building avatar url"
)

// ServiceCloudinary реализует порт MediaService поверх API Cloudinary.
type ServiceCloudinary struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinary создает новый медиасервис Cloudinary.
func NewCloudinary(cfg *config.CloudinaryConfig) (svc.MediaService, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxInitCloudinary, err)
	}
	client.Config.URL.Secure = true

	return &ServiceCloudinary{client: client, folder: cfg.Folder}, nil
}

// avatarPublicID выводит стабильный public id из почты гостя, поэтому
// повторные загрузки того же гостя перезаписывают прежний аватар.
func (s *ServiceCloudinary) avatarPublicID(email string) string {
	sum := sha256.Sum256([]byte(email))
	return s.folder + "/" + hex.EncodeToString(sum[:])[:avatarNameLength]
}

// UploadAvatar загружает изображение и возвращает URL уменьшенного аватара.
func (s *ServiceCloudinary) UploadAvatar(ctx context.Context, email string, file io.Reader) (string, error) {
	log := logger.Log(ctx).With(zap.String("service", "cloudinary"), zap.String("email", email))

	publicID := s.avatarPublicID(email)

	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		log.Error(ctx, "failed to upload avatar", zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxUploadingImage, err)
	}

	image, err := s.client.Image(publicID)
	if err != nil {
		log.Error(ctx, "failed to build avatar image", zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxBuildingURL, err)
	}
	image.Transformation = fmt.Sprintf("w_%d,h_%d,c_fill", avatarSize, avatarSize)
	image.Version = resp.Version

	url, err := image.String()
	if err != nil {
		log.Error(ctx, "failed to build avatar url", zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxBuildingURL, err)
	}

	log.Debug(ctx, "avatar uploaded", zap.String("public_id", publicID))
	return url, nil
}
