package usecase

import (
	"context"
	"fmt"
	"io"

	"storefront-bff/internal/domain"
	"storefront-bff/pkg/logger"
)

// ObjectStorage is the slice of the R2 client the logo upload needs.
type ObjectStorage interface {
	UploadBuffer(ctx context.Context, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// ImageProcessor resizes and re-encodes an uploaded image, returning the bytes and content type.
type ImageProcessor func(r io.Reader, filename string) ([]byte, string, error)

type BrandingUsecase struct {
	settings *SettingsUsecase
	storage  ObjectStorage
	process  ImageProcessor
}

func NewBrandingUsecase(settings *SettingsUsecase, storage ObjectStorage, process ImageProcessor) *BrandingUsecase {
	return &BrandingUsecase{settings: settings, storage: storage, process: process}
}

// UploadLogo stores the processed image and writes its URL into the general settings' logo_url.
// The whole general record is resent, so the usual required-field rules apply when it is enabled.
func (u *BrandingUsecase) UploadLogo(ctx context.Context, sess *domain.Session, r io.Reader, filename string) (*FormView, error) {
	log := logger.WithContext(ctx)

	form, err := u.settings.LoadForm(ctx, sess, domain.ResourceGeneral)
	if err != nil {
		return nil, err
	}
	previous, _ := form.Value("logo_url").(string)

	data, contentType, err := u.process(r, filename)
	if err != nil {
		return nil, fmt.Errorf("process logo: %w", err)
	}
	url, err := u.storage.UploadBuffer(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}

	if err := form.Set("logo_url", url); err != nil {
		return nil, err
	}
	if err := form.Submit(ctx, sess); err != nil {
		if delErr := u.storage.DeleteFile(ctx, url); delErr != nil {
			log.Warn().Err(delErr).Str("url", url).Msg("Failed to remove orphaned logo")
		}
		view := form.View()
		return &view, err
	}

	if previous != "" && previous != url {
		if err := u.storage.DeleteFile(ctx, previous); err != nil {
			log.Warn().Err(err).Str("url", previous).Msg("Previous logo not removed")
		}
	}

	log.Info().Str("url", url).Msg("Logo updated")
	view := form.View()
	return &view, nil
}
