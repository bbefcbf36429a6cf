package repository

import (
	"context"
	"sync"

	"launchboard-service/internal/domain/repository"
)

var _ repository.BlobRepository = (*MemoryBlobRepository)(nil)

// MemoryBlobRepository keeps blobs in process memory. Nothing survives a restart.
type MemoryBlobRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobRepository creates an empty in-memory repository
func NewMemoryBlobRepository() *MemoryBlobRepository {
	return &MemoryBlobRepository{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key
func (r *MemoryBlobRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Set stores a copy of data under key
func (r *MemoryBlobRepository) Set(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = append([]byte(nil), data...)
	return nil
}

// Ping always succeeds
func (r *MemoryBlobRepository) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op
func (r *MemoryBlobRepository) Close(_ context.Context) error {
	return nil
}
