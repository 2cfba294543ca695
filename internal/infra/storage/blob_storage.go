// Package storage implements object storage on gocloud.dev buckets (gs://, file://, mem://).
package storage

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"medapp/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

// BlobStorage stores objects in a gocloud.dev bucket.
type BlobStorage struct {
	bucket    *blob.Bucket
	bucketURL string
	publicURL string
	logger    *slog.Logger
}

var _ service.ObjectStorage = (*BlobStorage)(nil)

// OpenBucket opens bucketURL and wraps it. publicBaseURL, when set, prefixes returned object URLs.
func OpenBucket(ctx context.Context, bucketURL, publicBaseURL string, logger *slog.Logger) (*BlobStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	return NewBlobStorage(bucket, bucketURL, publicBaseURL, logger), nil
}

// NewBlobStorage wraps an already opened bucket.
func NewBlobStorage(bucket *blob.Bucket, bucketURL, publicBaseURL string, logger *slog.Logger) *BlobStorage {
	return &BlobStorage{
		bucket:    bucket,
		bucketURL: bucketURL,
		publicURL: publicBaseURL,
		logger:    logger,
	}
}

// Upload implements service.ObjectStorage.
func (s *BlobStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}

	s.logger.Debug("Uploaded object", slog.String("key", key), slog.Int("size", len(data)))

	return s.objectURL(key), nil
}

// Delete implements service.ObjectStorage.
func (s *BlobStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

// Close releases the bucket.
func (s *BlobStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func (s *BlobStorage) objectURL(key string) string {
	base := s.bucketURL
	if s.publicURL != "" {
		base = s.publicURL
	}

	return joinObjectURL(base, key)
}

// joinObjectURL appends key to base without its query. A base with neither host nor
// path, such as "mem://", yields "mem://key".
func joinObjectURL(base, key string) string {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" {
		trimmed, _, _ := strings.Cut(base, "?")

		return strings.TrimRight(trimmed, "/") + "/" + key
	}

	dir := strings.TrimRight(u.Path, "/")
	if u.Host == "" && dir == "" {
		return u.Scheme + "://" + key
	}

	return u.Scheme + "://" + u.Host + dir + "/" + key
}
