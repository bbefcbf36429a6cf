package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"launchboard-service/internal/domain/repository"
)

var _ repository.BlobRepository = (*FileBlobRepository)(nil)

// FileBlobRepository stores each blob as a file named after its key under baseDir
type FileBlobRepository struct {
	baseDir string
}

// NewFileBlobRepository creates baseDir if needed and returns a repository rooted there
func NewFileBlobRepository(baseDir string) (*FileBlobRepository, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &FileBlobRepository{baseDir: baseDir}, nil
}

func (r *FileBlobRepository) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(r.baseDir, key+".json"), nil
}

// Get reads the blob file for key
func (r *FileBlobRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading blob %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes the blob to a temp file and renames it over the old one, so readers
// see either the previous or the new blob.
func (r *FileBlobRepository) Set(_ context.Context, key string, data []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.baseDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing blob %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing blob %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing blob %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing blob %s: %w", key, err)
	}
	return nil
}

// Ping checks that the base directory is still there
func (r *FileBlobRepository) Ping(_ context.Context) error {
	_, err := os.Stat(r.baseDir)
	return err
}

// Close is a no-op
func (r *FileBlobRepository) Close(_ context.Context) error {
	return nil
}
