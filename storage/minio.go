package storage

import (
	"context"
	"errors"
	"fmt"

	"drivebox/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultContentType = "application/octet-stream"

type MinioBlobStore struct {
	client *minio.Client
	bucket string
}

func NewMinioBlobStore(cfg *config.BlobConfig) (*MinioBlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	store := &MinioBlobStore{client: client, bucket: cfg.Bucket}
	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinioBlobStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	return nil
}

func (s *MinioBlobStore) Put(ctx context.Context, in PutInput) (string, error) {
	handle := uuid.NewString()

	contentType := in.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	_, err := s.client.PutObject(ctx, s.bucket, handle, in.Reader, in.Size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: in.Metadata,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", handle, err)
	}
	return handle, nil
}

func (s *MinioBlobStore) Get(ctx context.Context, handle string) (*Object, error) {
	// StatObject up front so a bad handle surfaces before any bytes are
	// committed to the response.
	info, err := s.client.StatObject(ctx, s.bucket, handle, minio.StatObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.StatusCode == 404 {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat object %s: %w", handle, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, handle, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", handle, err)
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	return &Object{ContentType: contentType, Size: info.Size, Body: obj}, nil
}
