package blob

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"tastelocal/internal/domain/service"
	"tastelocal/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

const testBaseURL = "https://cdn.example/uploads"

func newTestStorage(t *testing.T) *bucketStorage {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	storage, ok := NewBucketStorage(bucket, testBaseURL+"/", 16, slog.New(slog.DiscardHandler)).(*bucketStorage)
	require.True(t, ok)
	storage.now = func() time.Time { return time.UnixMilli(1700000000000) }

	return storage
}

func TestUploadImage(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	url, err := storage.UploadImage(ctx, "businesses/business_1/menu", "kota photo.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/businesses/business_1/menu/1700000000000_kota_photo.png", url)

	data, err := storage.bucket.ReadAll(ctx, "businesses/business_1/menu/1700000000000_kota_photo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestUploadImage_Rejects(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	_, err := storage.UploadImage(ctx, "media", "notes.pdf", "application/pdf", []byte("x"))
	assert.True(t, errors.Is(err, service.ErrUnsupportedImage))

	_, err = storage.UploadImage(ctx, "media", "big.jpg", "image/jpeg", make([]byte, 17))
	assert.True(t, errors.Is(err, service.ErrImageTooLarge))
}

func TestDelete(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	url, err := storage.UploadImage(ctx, "media", "a.webp", "image/webp", []byte("w"))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(ctx, url))
	exists, err := storage.bucket.Exists(ctx, "media/1700000000000_a.webp")
	require.NoError(t, err)
	assert.False(t, exists)

	// already gone and foreign URLs are ignored
	assert.NoError(t, storage.Delete(ctx, url))
	assert.NoError(t, storage.Delete(ctx, "https://elsewhere.example/a.webp"))
}

func TestObjectKey(t *testing.T) {
	storage := newTestStorage(t)

	assert.Equal(t, "1700000000000_file", storage.objectKey("", ""))
	assert.Equal(t, "blog/1700000000000_x.gif", storage.objectKey("../blog/", "..\\..\\x.gif"))
}
