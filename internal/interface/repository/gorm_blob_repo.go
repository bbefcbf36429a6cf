package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"launchboard-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBlobRepository implements the BlobRepository interface
type GormBlobRepository struct {
	db *gorm.DB
}

// Blobs GORM model for database mapping
type Blobs struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Blobs) TableName() string {
	return "kv_blobs"
}

// NewGormBlobRepository creates a new GORM blob repository and migrates its table
func NewGormBlobRepository(db *gorm.DB) (repository.BlobRepository, error) {
	if err := db.AutoMigrate(&Blobs{}); err != nil {
		return nil, fmt.Errorf("migrating kv_blobs: %w", err)
	}
	return &GormBlobRepository{
		db: db,
	}, nil
}

// Get finds the blob stored under key
func (r *GormBlobRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row Blobs
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if result.Error != nil {
		return nil, false, fmt.Errorf("getting blob %s: %w", key, result.Error)
	}
	return row.Value, true, nil
}

// Set upserts the blob stored under key
func (r *GormBlobRepository) Set(ctx context.Context, key string, data []byte) error {
	row := Blobs{Key: key, Value: data, UpdatedAt: time.Now().UTC()}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row)
	if result.Error != nil {
		return fmt.Errorf("upserting blob %s: %w", key, result.Error)
	}
	return nil
}

// Ping checks the database connection
func (r *GormBlobRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (r *GormBlobRepository) Close(_ context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
