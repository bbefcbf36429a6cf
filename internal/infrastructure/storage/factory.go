package storage

import (
	"context"
	"fmt"

	"launchboard-service/internal/domain/repository"
	"launchboard-service/internal/infrastructure/config"
	"launchboard-service/internal/infrastructure/persistence"
	blobrepo "launchboard-service/internal/interface/repository"
	"launchboard-service/pkg/logger"
)

// NewBlobRepository opens the favorites storage backend selected by cfg.StoreBackend.
// The caller owns the returned repository and must Close it.
func NewBlobRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.BlobRepository, error) {
	log = log.With("backend", cfg.StoreBackend)

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		log.Warn("Using in-memory favorites storage, favorites will not survive a restart")
		return blobrepo.NewMemoryBlobRepository(), nil

	case config.StoreBackendFile:
		log.Info("Using file favorites storage", "dir", cfg.FileStoreDir)
		repo, err := blobrepo.NewFileBlobRepository(cfg.FileStoreDir)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.StoreBackendSQLite:
		log.Info("Using SQLite favorites storage", "path", cfg.SQLitePath)
		db, err := persistence.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return blobrepo.NewSQLiteBlobRepository(db), nil

	case config.StoreBackendPostgres:
		log.Info("Connecting to PostgreSQL")
		db, err := persistence.NewPostgres(cfg.PostgresURI)
		if err != nil {
			return nil, err
		}
		return blobrepo.NewGormBlobRepository(db)

	case config.StoreBackendMongo:
		log.Info("Connecting to MongoDB", "database", cfg.MongoDB)
		mongoCfg := persistence.MongoConfig{
			URI:            cfg.MongoURI,
			Username:       cfg.MongoUser,
			Password:       cfg.MongoPassword,
			AppName:        "launchboard/" + cfg.AppVersion,
			ConnectTimeout: cfg.MongoConnectTimeout,
		}
		if cfg.MongoMaxPoolSize > 0 {
			mongoCfg.MaxPoolSize = uint64(cfg.MongoMaxPoolSize)
		}
		client, err := persistence.NewMongoClient(ctx, mongoCfg)
		if err != nil {
			return nil, err
		}
		return blobrepo.NewMongoBlobRepository(client, persistence.GetDatabase(client, cfg.MongoDB)), nil

	case config.StoreBackendS3:
		log.Info("Connecting to S3 storage", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		client, err := persistence.NewS3Client(ctx, persistence.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return blobrepo.NewS3BlobRepository(client, cfg.S3Bucket, "launchboard/"), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
