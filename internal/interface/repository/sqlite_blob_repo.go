package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"launchboard-service/internal/domain/repository"

	"github.com/jmoiron/sqlx"
)

var _ repository.BlobRepository = (*SQLiteBlobRepository)(nil)

// SQLiteBlobRepository implements the BlobRepository interface on a migrated SQLite database
type SQLiteBlobRepository struct {
	dbConn *sqlx.DB
}

// dbBlob represents a blob row as stored in the database.
type dbBlob struct {
	Key   string `db:"key"`
	Value []byte `db:"value"`
}

// NewSQLiteBlobRepository wraps a connection returned by persistence.NewSQLite
func NewSQLiteBlobRepository(db *sqlx.DB) *SQLiteBlobRepository {
	return &SQLiteBlobRepository{
		dbConn: db,
	}
}

// Get retrieves the blob stored under key
func (r *SQLiteBlobRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row dbBlob
	query := `SELECT key, value FROM kv_blobs WHERE key = ?`

	err := r.dbConn.GetContext(ctx, &row, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting blob %s: %w", key, err)
	}
	return row.Value, true, nil
}

// Set inserts or replaces the blob stored under key
func (r *SQLiteBlobRepository) Set(ctx context.Context, key string, data []byte) error {
	query := `INSERT INTO kv_blobs (key, value, updated_at) VALUES (?, ?, ?)
		      ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.dbConn.ExecContext(ctx, query, key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("setting blob %s: %w", key, err)
	}
	return nil
}

// Ping checks the database connection
func (r *SQLiteBlobRepository) Ping(ctx context.Context) error {
	return r.dbConn.PingContext(ctx)
}

// Close terminates the database connection.
func (r *SQLiteBlobRepository) Close(_ context.Context) error {
	if err := r.dbConn.Close(); err != nil {
		return fmt.Errorf("closing sqlite: %w", err)
	}
	return nil
}
