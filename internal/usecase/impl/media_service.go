package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tastelocal/internal/delivery/context"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
)

// mediaService implements the MediaUsecase interface.
type mediaService struct {
	blob   service.BlobStorage
	logger *slog.Logger
}

// NewMediaService is the constructor for mediaService.
func NewMediaService(blob service.BlobStorage, logger *slog.Logger) usecase.MediaUsecase {
	return &mediaService{
		blob:   blob,
		logger: logger,
	}
}

func (srv *mediaService) loggerFrom(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UploadImage stores an image under the business's folder and returns its URL.
func (srv *mediaService) UploadImage(ctx context.Context, businessID string, upload *usecase.ImageUpload) (string, error) {
	return srv.upload(ctx, "businesses/"+businessID+"/images", upload)
}

func (srv *mediaService) AddMedia(ctx context.Context, store usecase.BusinessStore, input *usecase.AddMediaInput) (entity.MediaItem, error) {
	if !input.Type.IsValid() {
		return entity.MediaItem{}, errors.WithStack(domainerrors.Validation("unknown media type " + string(input.Type)))
	}

	url := strings.TrimSpace(input.URL)
	uploaded := false
	if input.File != nil {
		var err error
		url, err = srv.upload(ctx, "businesses/"+store.ID()+"/media", input.File)
		if err != nil {
			return entity.MediaItem{}, err
		}
		uploaded = true
	}
	if url == "" {
		return entity.MediaItem{}, errors.WithStack(domainerrors.Validation("a file or a url is required"))
	}

	item, err := store.AddMediaItem(ctx, entity.MediaItem{
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		URL:         url,
	})
	if err != nil {
		if uploaded {
			srv.release(ctx, url)
		}

		return entity.MediaItem{}, err
	}

	return item, nil
}

// DeleteMedia removes the gallery entry first. The blobs are released after the
// write succeeded and failures there are only logged.
func (srv *mediaService) DeleteMedia(ctx context.Context, store usecase.BusinessStore, mediaID string) error {
	item, err := store.DeleteMediaItem(ctx, mediaID)
	if err != nil {
		return err
	}

	srv.release(ctx, item.URL)
	if item.Thumbnail != nil {
		srv.release(ctx, *item.Thumbnail)
	}

	return nil
}

func (srv *mediaService) upload(ctx context.Context, dir string, upload *usecase.ImageUpload) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", errors.WithStack(domainerrors.Validation("image is empty"))
	}

	url, err := srv.blob.UploadImage(ctx, dir, upload.Filename, upload.ContentType, upload.Data)
	if err != nil {
		if errors.Is(err, service.ErrImageTooLarge) || errors.Is(err, service.ErrUnsupportedImage) {
			return "", errors.WithStack(domainerrors.Validation(err.Error()))
		}

		return "", errors.Wrap(err, "failed to upload image")
	}

	return url, nil
}

func (srv *mediaService) release(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := srv.blob.Delete(ctx, url); err != nil {
		srv.loggerFrom(ctx).Warn("Failed to delete blob", slog.String("url", url), slog.Any("error", err))
	}
}
