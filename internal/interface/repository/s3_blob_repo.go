package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"launchboard-service/internal/domain/repository"

	"github.com/minio/minio-go/v7"
)

var _ repository.BlobRepository = (*S3BlobRepository)(nil)

// S3BlobRepository stores each blob as an object in an S3-compatible bucket
type S3BlobRepository struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3BlobRepository creates a repository writing objects under prefix in bucket
func NewS3BlobRepository(client *minio.Client, bucket, prefix string) *S3BlobRepository {
	return &S3BlobRepository{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (r *S3BlobRepository) objectName(key string) string {
	return r.prefix + key + ".json"
}

// Get downloads the object for key
func (r *S3BlobRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, r.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, false, fmt.Errorf("getting object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading object %s: %w", key, err)
	}
	return data, true, nil
}

// Set uploads data as the object for key
func (r *S3BlobRepository) Set(ctx context.Context, key string, data []byte) error {
	_, err := r.client.PutObject(ctx, r.bucket, r.objectName(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("putting object %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable
func (r *S3BlobRepository) Ping(ctx context.Context) error {
	_, err := r.client.BucketExists(ctx, r.bucket)
	return err
}

// Close is a no-op
func (r *S3BlobRepository) Close(_ context.Context) error {
	return nil
}
