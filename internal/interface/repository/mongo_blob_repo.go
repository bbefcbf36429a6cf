package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"launchboard-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBlobRepository implements the BlobRepository interface
type MongoBlobRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// blobDocument is one key/value pair in the blobs collection
type blobDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoBlobRepository creates a new MongoDB blob repository.
// client may be nil when the caller owns the connection lifecycle.
func NewMongoBlobRepository(client *mongo.Client, db *mongo.Database) repository.BlobRepository {
	return &MongoBlobRepository{
		client:     client,
		collection: db.Collection("blobs"),
	}
}

// Get finds the blob stored under key
func (r *MongoBlobRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc blobDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("finding blob %s: %w", key, err)
	}
	return doc.Value, true, nil
}

// Set upserts the blob stored under key
func (r *MongoBlobRepository) Set(ctx context.Context, key string, data []byte) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{
			"value":     data,
			"updatedAt": time.Now().UTC(),
		}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("upserting blob %s: %w", key, err)
	}
	return nil
}

// Ping checks the MongoDB connection
func (r *MongoBlobRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}

// Close disconnects the client if the repository owns it
func (r *MongoBlobRepository) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}
