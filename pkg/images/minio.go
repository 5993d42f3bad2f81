// Package images stores profile images in S3-compatible object storage
// via MinIO. Objects get opaque UUID keys under a fixed prefix; the
// public URL handed to clients is the configured base URL plus the key.
package images

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// keyPrefix namespaces avatar objects inside the bucket.
const keyPrefix = "users/"

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (w minioClientWrapper) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return w.c.RemoveObject(ctx, bucketName, objectName, opts)
}

// Config holds connection settings for the object store.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UseSSL        bool
}

// Store uploads and deletes profile images.
type Store struct {
	api           minioAPI
	bucket        string
	publicBaseURL string
}

// New connects to the object store and ensures the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}
	return newWithAPI(ctx, minioClientWrapper{c: client}, cfg.Bucket, cfg.PublicBaseURL)
}

// newWithAPI allows injecting a mockable API (used in tests).
func newWithAPI(ctx context.Context, api minioAPI, bucket, publicBaseURL string) (*Store, error) {
	s := &Store{
		api:           api,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

// ensureBucketExists creates the bucket if it doesn't exist.
func (s *Store) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Upload stores an image under a fresh UUID key and returns its public
// URL. The key never derives from user input, so filenames cannot collide
// or traverse.
func (s *Store) Upload(ctx context.Context, contentType string, r io.Reader, size int64) (string, error) {
	key := keyPrefix + uuid.NewString()

	_, err := s.api.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes the object behind a previously returned public URL. URLs
// that do not belong to this store are ignored.
func (s *Store) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.publicBaseURL+"/")
	if !ok || !strings.HasPrefix(key, keyPrefix) {
		return nil
	}

	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
