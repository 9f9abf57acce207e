package storage

import (
	"bytes"
	"context"
	"edulink-service/internal/app/contracts"
	"edulink-service/internal/pkg/exceptions"
	"time"

	"github.com/minio/minio-go/v7"
)

type minioStorageService struct {
	client     *minio.Client
	bucketName string
}

func NewMinioStorageService(client *minio.Client, bucketName string) contracts.StorageService {
	return &minioStorageService{
		client:     client,
		bucketName: bucketName,
	}
}

func (s *minioStorageService) Upload(ctx context.Context, objectName, contentType string, data []byte) error {
	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucketName, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, s.bucketName)
	}
	return nil
}

func (s *minioStorageService) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucketName, objectName, expiry, nil)
	if err != nil {
		return "", exceptions.ErrMinioPresignObject(err, s.bucketName)
	}
	return url.String(), nil
}
