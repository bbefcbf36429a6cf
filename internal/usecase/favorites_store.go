package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/internal/domain/repository"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"
)

// DefaultFavoritesKey is the storage key the favorites blob lives under
const DefaultFavoritesKey = "favorites"

// FavoritesStore is the durable set of favorited launches.
//
// Toggles are serialized by writeMu: each one mutates the in-memory set and then
// writes the whole set before the next toggle starts, so the stored blob always
// contains every earlier change. mu guards the set itself and is never held
// across storage I/O, so IsFavorite does not wait on a write in progress.
type FavoritesStore struct {
	repo    repository.BlobRepository
	key     string
	logger  logger.Logger
	metrics *metrics.Metrics

	writeMu sync.Mutex

	mu  sync.RWMutex
	set *entity.FavoritesSet
}

// NewFavoritesStore creates an empty store persisting to repo under key.
// Call Load before relying on IsFavorite to reflect earlier sessions.
func NewFavoritesStore(repo repository.BlobRepository, key string, logger logger.Logger, m *metrics.Metrics) *FavoritesStore {
	if key == "" {
		key = DefaultFavoritesKey
	}
	return &FavoritesStore{
		repo:    repo,
		key:     key,
		logger:  logger,
		metrics: m,
		set:     entity.NewFavoritesSet(nil),
	}
}

// Load replaces the in-memory set with the persisted one. A missing blob yields an
// empty set. If the blob cannot be read or decoded the set is also left empty and
// an ErrStorageRead error is returned for the caller to report.
func (s *FavoritesStore) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	launches, err := s.read(ctx)
	if err != nil {
		s.replace(entity.NewFavoritesSet(nil))
		s.storageError("load")
		s.logger.Error("Failed to load favorites, starting empty", "key", s.key, "error", err)
		return err
	}

	s.replace(entity.NewFavoritesSet(launches))
	s.logger.Info("Favorites loaded", "key", s.key, "count", len(launches))
	return nil
}

func (s *FavoritesStore) read(ctx context.Context) ([]entity.Launch, error) {
	data, found, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageRead, err)
	}
	if !found || len(data) == 0 {
		return nil, nil
	}

	var launches []entity.Launch
	if err := json.Unmarshal(data, &launches); err != nil {
		return nil, fmt.Errorf("%w: decoding favorites: %v", entity.ErrStorageRead, err)
	}
	return launches, nil
}

func (s *FavoritesStore) replace(set *entity.FavoritesSet) {
	s.mu.Lock()
	s.set = set
	n := set.Len()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.FavoritesTotal.Set(float64(n))
	}
}

// IsFavorite reports whether id is currently favorited
func (s *FavoritesStore) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Has(id)
}

// Get returns the snapshot stored for id
func (s *FavoritesStore) Get(id string) (entity.Launch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Get(id)
}

// List returns every favorite snapshot in the order it was added
func (s *FavoritesStore) List() []entity.Launch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Launches()
}

// Count returns the number of favorites
func (s *FavoritesStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Len()
}

// Toggle flips membership of launch.ID: an absent launch is added as a snapshot of
// launch, a present one is removed. It returns the resulting membership.
//
// The whole set is written to storage before Toggle returns. When that write fails
// the in-memory change is kept and an ErrStorageWrite error is returned alongside
// the new membership, so the caller can retry or toggle back.
func (s *FavoritesStore) Toggle(ctx context.Context, launch entity.Launch) (bool, error) {
	if launch.ID == "" {
		return false, fmt.Errorf("%w: missing id", entity.ErrMalformedRecord)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	favorite := !s.set.Has(launch.ID)
	if favorite {
		s.set.Add(launch)
	} else {
		s.set.Remove(launch.ID)
	}
	snapshot := s.set.Launches()
	s.mu.Unlock()

	action := "removed"
	if favorite {
		action = "added"
	}
	if s.metrics != nil {
		s.metrics.FavoriteToggles.WithLabelValues(action).Inc()
		s.metrics.FavoritesTotal.Set(float64(len(snapshot)))
	}

	if err := s.persist(context.WithoutCancel(ctx), snapshot); err != nil {
		s.storageError("save")
		s.logger.Error("Failed to persist favorites",
			"launchID", launch.ID,
			"action", action,
			"error", err)
		return favorite, err
	}

	s.logger.Debug("Favorite toggled", "launchID", launch.ID, "action", action, "count", len(snapshot))
	return favorite, nil
}

// Save writes the current set to storage. Useful to retry after a failed Toggle.
func (s *FavoritesStore) Save(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.persist(context.WithoutCancel(ctx), s.List()); err != nil {
		s.storageError("save")
		return err
	}
	return nil
}

func (s *FavoritesStore) persist(ctx context.Context, launches []entity.Launch) error {
	data, err := json.Marshal(launches)
	if err != nil {
		return fmt.Errorf("%w: encoding favorites: %v", entity.ErrStorageWrite, err)
	}
	if err := s.repo.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageWrite, err)
	}
	return nil
}

func (s *FavoritesStore) storageError(op string) {
	if s.metrics != nil {
		s.metrics.StorageErrorCount.WithLabelValues(op).Inc()
	}
}
