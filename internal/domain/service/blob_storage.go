package service

import (
	"context"

	"github.com/pkg/errors"
)

// Upload limits.
const (
	MaxImageBytes = 5 << 20
)

// AllowedImageTypes are the content types accepted for uploads.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var (
	// ErrImageTooLarge is returned when an upload exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds the upload limit")
	// ErrUnsupportedImage is returned for content types outside AllowedImageTypes.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// BlobStorage stores uploaded images and hands out durable URLs for them.
type BlobStorage interface {
	// UploadImage stores data under path and returns its public URL.
	UploadImage(ctx context.Context, path, filename, contentType string, data []byte) (string, error)

	// Delete removes the object behind a URL previously returned by UploadImage.
	// URLs that do not belong to this storage are ignored.
	Delete(ctx context.Context, url string) error

	// Close releases the bucket.
	Close() error
}
