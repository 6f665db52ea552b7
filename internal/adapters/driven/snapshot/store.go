package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driven"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store keeps snapshot images in one bucket.
type Store struct {
	client *minio.Client
	bucket string
	region string
	expiry time.Duration
}

// New creates a store from settings. No request is made; call EnsureBucket
// before the first upload.
func New(settings domain.SnapshotSettings) (*Store, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: snapshot endpoint, bucket or keys not set", domain.ErrConfiguration)
	}

	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
		Region: settings.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot endpoint %q: %v", domain.ErrConfiguration, settings.Endpoint, err)
	}

	expiry := time.Duration(settings.URLExpirySeconds) * time.Second
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &Store{
		client: client,
		bucket: settings.Bucket,
		region: settings.Region,
		expiry: expiry,
	}, nil
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket unless it already exists.
func (s *Store) EnsureBucket(ctx context.Context) error {
	err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	if err == nil {
		logger.Info("created snapshot bucket %s", s.bucket)
		return nil
	}
	exists, existsErr := s.client.BucketExists(ctx, s.bucket)
	if existsErr == nil && exists {
		logger.Debug("snapshot bucket %s already exists", s.bucket)
		return nil
	}
	return fmt.Errorf("creating bucket %s: %w", s.bucket, wrap(err))
}

// Put uploads an image.
func (s *Store) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("uploading snapshot %s: %w", name, wrap(err))
	}
	logger.Debug("uploaded snapshot %s (%d bytes)", name, size)
	return nil
}

// URL returns a presigned GET link for an existing image.
func (s *Store) URL(ctx context.Context, name string) (string, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{}); err != nil {
		return "", fmt.Errorf("snapshot %s: %w", name, wrap(err))
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, name, s.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presigning snapshot %s: %w", name, wrap(err))
	}
	return u.String(), nil
}

// wrap classifies an object store error.
func wrap(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
}
