// Package blob stores uploaded images in a gocloud.dev bucket (GCS in
// production, a local directory or memory elsewhere).
package blob

import (
	"context"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"tastelocal/config"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

type bucketStorage struct {
	bucket   *blob.Bucket
	baseURL  string
	maxBytes int64
	now      func() time.Time
	logger   *slog.Logger
}

// NewBucketStorage wraps an open bucket. Objects are served at baseURL/<key>.
func NewBucketStorage(bucket *blob.Bucket, baseURL string, maxBytes int64, logger *slog.Logger) service.BlobStorage {
	if maxBytes <= 0 {
		maxBytes = service.MaxImageBytes
	}

	return &bucketStorage{
		bucket:   bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		now:      time.Now,
		logger:   logger,
	}
}

// Params holds dependencies for the blob storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket.
func New(params Params) (service.BlobStorage, error) {
	cfg := params.Config.Blob
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("blob bucket URL is required")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	storage := NewBucketStorage(bucket, cfg.PublicBaseURL, cfg.MaxUploadBytes, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return storage.Close()
		},
	})

	return storage, nil
}

// UploadImage stores data at <path>/<unixMillis>_<filename>.
func (s *bucketStorage) UploadImage(ctx context.Context, dir, filename, contentType string, data []byte) (string, error) {
	if !service.AllowedImageTypes[contentType] {
		return "", errors.Wrap(service.ErrUnsupportedImage, contentType)
	}
	if int64(len(data)) > s.maxBytes {
		return "", errors.Wrapf(service.ErrImageTooLarge, "%s over the %s limit", util.FormatBytes(int64(len(data))), util.FormatBytes(s.maxBytes))
	}

	key := s.objectKey(dir, filename)
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	}); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind url. Unknown or already deleted objects are not an error.
func (s *bucketStorage) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		s.logger.DebugContext(ctx, "Skipping delete of foreign URL", slog.String("url", url))

		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}

// Close releases the bucket.
func (s *bucketStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func (s *bucketStorage) objectKey(dir, filename string) string {
	name := util.SanitizeFilename(filename)
	dir = strings.Trim(path.Clean("/"+dir), "/")
	stamped := strconv.FormatInt(s.now().UnixMilli(), 10) + "_" + name
	if dir == "" {
		return stamped
	}

	return dir + "/" + stamped
}
