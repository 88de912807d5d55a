package impl

import (
	"context"
	"testing"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/service"
	mockSvc "tastelocal/internal/mocks/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testImageURL = "https://storage.example.com/businesses/business_1/media/photo.jpg"

func createTestMediaService(t *testing.T) (usecase.MediaUsecase, *mockSvc.MockBlobStorage) {
	blob := mockSvc.NewMockBlobStorage(t)

	return NewMediaService(blob, testLogger()), blob
}

func jpegUpload() *usecase.ImageUpload {
	return &usecase.ImageUpload{Filename: "photo.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}
}

func TestMediaService_UploadImage(t *testing.T) {
	srv, blob := createTestMediaService(t)
	ctx := context.Background()

	blob.EXPECT().UploadImage(ctx, "businesses/business_1/images", "photo.jpg", "image/jpeg", mock.Anything).
		Return("https://storage.example.com/businesses/business_1/images/photo.jpg", nil).Once()

	url, err := srv.UploadImage(ctx, "business_1", jpegUpload())
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/businesses/business_1/images/photo.jpg", url)

	_, err = srv.UploadImage(ctx, "business_1", &usecase.ImageUpload{Filename: "empty.jpg"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestMediaService_UploadRejectedByStorage(t *testing.T) {
	srv, blob := createTestMediaService(t)
	ctx := context.Background()

	blob.EXPECT().UploadImage(ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.WithStack(service.ErrImageTooLarge)).Once()

	_, err := srv.UploadImage(ctx, "business_1", jpegUpload())
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestMediaService_AddMediaUploadsFile(t *testing.T) {
	fixture := newStoreFixture(t, func(*entity.Business) {})
	srv, blob := createTestMediaService(t)
	ctx := context.Background()

	blob.EXPECT().UploadImage(ctx, "businesses/business_1/media", "photo.jpg", "image/jpeg", mock.Anything).
		Return(testImageURL, nil).Once()

	item, err := srv.AddMedia(ctx, fixture.store, &usecase.AddMediaInput{
		Type:  entity.MediaTypePhoto,
		Title: "Friday special",
		File:  jpegUpload(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, testImageURL, item.URL)

	remote := fixture.remote(t)
	require.Len(t, remote.Media, 1)
	assert.Equal(t, "Friday special", remote.Media[0].Title)
}

func TestMediaService_AddMediaReleasesUploadOnWriteFailure(t *testing.T) {
	fixture := newStoreFixture(t, func(*entity.Business) {})
	fixture.repo.set(errors.New("unavailable"), nil)
	srv, blob := createTestMediaService(t)
	ctx := context.Background()

	blob.EXPECT().UploadImage(ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(testImageURL, nil).Once()
	blob.EXPECT().Delete(ctx, testImageURL).Return(nil).Once()

	_, err := srv.AddMedia(ctx, fixture.store, &usecase.AddMediaInput{Type: entity.MediaTypePhoto, File: jpegUpload()})
	assert.True(t, domainerrors.IsWriteError(err))
	assert.Empty(t, mustBusiness(t, fixture.store).Media)
}

func TestMediaService_AddMediaValidation(t *testing.T) {
	fixture := newStoreFixture(t, func(*entity.Business) {})
	srv, _ := createTestMediaService(t)
	ctx := context.Background()

	_, err := srv.AddMedia(ctx, fixture.store, &usecase.AddMediaInput{Type: "gif", URL: testImageURL})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.AddMedia(ctx, fixture.store, &usecase.AddMediaInput{Type: entity.MediaTypeVideo, URL: "  "})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	item, err := srv.AddMedia(ctx, fixture.store, &usecase.AddMediaInput{Type: entity.MediaTypeVideo, URL: "https://video.example.com/v/1"})
	require.NoError(t, err)
	assert.Equal(t, entity.MediaTypeVideo, item.Type)
}

func TestMediaService_DeleteMediaReleasesBlobs(t *testing.T) {
	thumbnail := "https://storage.example.com/thumb.jpg"
	fixture := newStoreFixture(t, func(b *entity.Business) {
		b.Media = []entity.MediaItem{
			{ID: "media_1", Type: entity.MediaTypePhoto, URL: testImageURL, Thumbnail: &thumbnail, UploadedAt: testEpoch},
		}
	})
	srv, blob := createTestMediaService(t)
	ctx := context.Background()

	blob.EXPECT().Delete(ctx, testImageURL).Return(nil).Once()
	blob.EXPECT().Delete(ctx, thumbnail).Return(errors.New("permission denied")).Once()

	require.NoError(t, srv.DeleteMedia(ctx, fixture.store, "media_1"))
	assert.Empty(t, fixture.remote(t).Media)

	err := srv.DeleteMedia(ctx, fixture.store, "media_1")
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
