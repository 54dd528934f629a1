package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"presentation-service/internal/database/minio"
)

// MinioStore keeps deck files in a MinIO bucket instead of the local
// disk, for deployments where workers and the API run on different hosts.
type MinioStore struct {
	client *minio.MinioClient
	bucket string
}

func NewMinioStore(client *minio.MinioClient, bucket string) *MinioStore {
	return &MinioStore{
		client: client,
		bucket: bucket,
	}
}

func (s *MinioStore) objectName(name string) string {
	return path.Base(name)
}

func (s *MinioStore) Save(ctx context.Context, name string, data []byte, contentType string) error {
	if err := s.client.UploadBytes(ctx, s.bucket, s.objectName(name), data, contentType); err != nil {
		return fmt.Errorf("failed to store deck %s: %w", name, err)
	}
	return nil
}

func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	objectName := s.objectName(name)

	exists, err := s.client.FileExists(ctx, s.bucket, objectName)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrNotFound
	}

	object, err := s.client.GetFile(ctx, s.bucket, objectName)
	if err != nil {
		return nil, 0, err
	}

	info, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, 0, fmt.Errorf("failed to stat deck object %s: %w", objectName, err)
	}
	return object, info.Size, nil
}

func (s *MinioStore) Exists(ctx context.Context, name string) (bool, error) {
	return s.client.FileExists(ctx, s.bucket, s.objectName(name))
}
