package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"fleetadmin/config"
	"fleetadmin/internal/domain"
)

// objectStore is the subset of *minio.Client the document storage calls.
type objectStore interface {
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucket, key string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// DocumentStorage keeps contract documents in an S3 compatible bucket.
type DocumentStorage struct {
	client objectStore
	bucket string
}

var _ domain.DocumentStorage = (*DocumentStorage)(nil)

// NewDocumentStorage connects to the endpoint and creates the bucket when it does not exist.
func NewDocumentStorage(ctx context.Context, cfg config.S3Config) (*DocumentStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return &DocumentStorage{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores doc under prefix/<uuid>/<file name> and returns the object key.
func (s *DocumentStorage) Upload(ctx context.Context, prefix string, doc domain.ContractDocument) (string, error) {
	key := path.Join(prefix, uuid.NewString(), safeFileName(doc.FileName))
	_, err := s.client.PutObject(ctx, s.bucket, key, doc.Body, doc.Size, minio.PutObjectOptions{
		ContentType: doc.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	return key, nil
}

// PresignedURL returns a GET URL for key valid for expiry. The download keeps the stored file name.
func (s *DocumentStorage) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return u.String(), nil
}

// safeFileName strips directories and characters that do not belong in an object key.
func safeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if clean == "" || clean == "." || clean == ".." {
		return "document.pdf"
	}
	return clean
}
