package repository

import (
	"context"
)

// BlobRepository defines the interface for key-addressed blob storage
type BlobRepository interface {
	// Get returns the blob stored under key. found is false when the key has never been set.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, data []byte) error
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the repository.
	Close(ctx context.Context) error
}
