package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hisabat-app/hisabat_backend/internal/apperrors"
	portsrepo "github.com/hisabat-app/hisabat_backend/internal/core/ports/repositories"
)

// AttachmentStore keeps receipt files in an S3-compatible bucket.
type AttachmentStore struct {
	client *minio.Client
	bucket string
}

var _ portsrepo.AttachmentStore = (*AttachmentStore)(nil)

// Config carries the connection settings for the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewAttachmentStore connects to the object store and ensures the receipts
// bucket exists.
func NewAttachmentStore(ctx context.Context, cfg Config) (*AttachmentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &AttachmentStore{client: client, bucket: cfg.Bucket}, nil
}

// Store writes the object under key. A failure surfaces as ErrDependency so
// the owning ledger mutation aborts instead of committing without its receipt.
func (s *AttachmentStore) Store(ctx context.Context, key string, contentType string, size int64, content io.Reader) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to store attachment %s: %v", apperrors.ErrDependency, key, err)
	}
	return nil
}

// Retrieve opens the object stored under key. The caller closes the content.
func (s *AttachmentStore) Retrieve(ctx context.Context, key string) (*portsrepo.Attachment, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open attachment %s: %v", apperrors.ErrDependency, key, err)
	}

	// GetObject is lazy; Stat forces the first round trip so a missing key
	// surfaces here rather than mid-stream.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		var minioErr minio.ErrorResponse
		if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to stat attachment %s: %v", apperrors.ErrDependency, key, err)
	}

	return &portsrepo.Attachment{
		Content:     obj,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

// Delete removes the object stored under key.
func (s *AttachmentStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: failed to delete attachment %s: %v", apperrors.ErrDependency, key, err)
	}
	return nil
}
