package repository

import (
	"context"

	"launchboard-service/internal/domain/entity"
)

// LaunchSource defines the interface for fetching the full launch collection
type LaunchSource interface {
	// FetchLaunches returns every launch in source order. Records the source
	// sends without the required fields are dropped rather than failing the call.
	FetchLaunches(ctx context.Context) ([]entity.Launch, error)
}
