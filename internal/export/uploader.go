// Package export publishes curation snapshots (learned mappings and the
// unknown-word backlog) to S3-compatible storage. When no bucket is
// configured the NoopUploader is used and nothing leaves the process.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/eskdev24/buyvia-voice-api/internal/config"
)

// Uploader stores an object under key.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) error
	// Enabled reports whether uploads reach real storage.
	Enabled() bool
}

// objectClient is the subset of *minio.Client used by S3Uploader.
type objectClient interface {
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

type minioClient struct {
	client *minio.Client
}

func (m *minioClient) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// S3Uploader writes JSON objects to a bucket.
type S3Uploader struct {
	client objectClient
	bucket string
}

// Upload writes data to key in the configured bucket.
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte) error {
	if err := u.client.PutObject(ctx, u.bucket, key, data, "application/json"); err != nil {
		return fmt.Errorf("upload %s to S3: %w", key, err)
	}
	return nil
}

// Enabled is always true for S3Uploader.
func (u *S3Uploader) Enabled() bool { return true }

// NoopUploader discards uploads.
type NoopUploader struct{}

// Upload is a no-op.
func (NoopUploader) Upload(ctx context.Context, key string, data []byte) error { return nil }

// Enabled is always false for NoopUploader.
func (NoopUploader) Enabled() bool { return false }

// NewUploader returns a NoopUploader when no bucket is configured and an
// S3Uploader otherwise.
func NewUploader(cfg config.ExportConfig) (Uploader, error) {
	if !cfg.Enabled() {
		return NoopUploader{}, nil
	}

	useSSL := true
	if cfg.UseSSL != nil {
		useSSL = *cfg.UseSSL
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create S3 client: %w", err)
	}

	return &S3Uploader{
		client: &minioClient{client: client},
		bucket: cfg.Bucket,
	}, nil
}
