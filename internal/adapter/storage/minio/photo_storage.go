package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/bryokn/ClassiConnect/internal/config"
)

// PhotoStorage keeps listing photos in a MinIO/S3 bucket and hands back
// public URLs for the listing's image sequence.
type PhotoStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewPhotoStorage(cfg *config.MinioConfig, logger *zap.Logger) (*PhotoStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, existsErr := client.BucketExists(context.Background(), cfg.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", cfg.Bucket, err)
		}
	}
	logger.Info("Photo storage ready", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))

	return &PhotoStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

func (s *PhotoStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)

	contentType := http.DetectContentType(data)
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("Failed to upload photo",
			zap.String("bucket", s.bucket), zap.String("object_key", objectKey), zap.Error(err))
		return "", fmt.Errorf("failed to upload photo %s: %w", objectKey, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("Photo uploaded", zap.String("object_key", objectKey))
	return url, nil
}
