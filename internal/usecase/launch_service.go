package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/pkg/logger"
)

// LaunchService is the single owner of the launch cache and the favorites store.
// Consumers (HTTP API, CLI) go through it rather than touching either directly.
type LaunchService struct {
	cache     *LaunchCache
	favorites *FavoritesStore
	logger    logger.Logger
}

// SearchResult is a filtered view of the cache at one point in time
type SearchResult struct {
	Launches  []entity.Launch
	Favorite  map[string]bool
	Status    entity.CacheStatus
	FetchedAt time.Time
	Total     int   // size of the unfiltered collection
	Err       error // last fetch error when Status is error
}

// NewLaunchService creates a new launch service
func NewLaunchService(cache *LaunchCache, favorites *FavoritesStore, logger logger.Logger) *LaunchService {
	return &LaunchService{
		cache:     cache,
		favorites: favorites,
		logger:    logger,
	}
}

// Load restores favorites from durable storage. It must finish before
// IsFavorite or Toggle are trusted to reflect earlier sessions.
func (s *LaunchService) Load(ctx context.Context) error {
	return s.favorites.Load(ctx)
}

// GetLaunches returns the current cache state without fetching
func (s *LaunchService) GetLaunches() entity.CacheEntry {
	return s.cache.GetLaunches()
}

// Refresh fetches launches unless the cache is still fresh
func (s *LaunchService) Refresh(ctx context.Context) (entity.CacheEntry, error) {
	return s.cache.Refresh(ctx)
}

// ForceRefresh discards freshness and fetches launches
func (s *LaunchService) ForceRefresh(ctx context.Context) (entity.CacheEntry, error) {
	s.cache.Invalidate()
	return s.cache.Refresh(ctx)
}

// Apply filters records with criteria
func (s *LaunchService) Apply(records []entity.Launch, criteria entity.FilterCriteria) []entity.Launch {
	return ApplyFilter(records, criteria)
}

// IsFavorite reports whether id is favorited
func (s *LaunchService) IsFavorite(id string) bool {
	return s.favorites.IsFavorite(id)
}

// Toggle flips the favorite state of launch
func (s *LaunchService) Toggle(ctx context.Context, launch entity.Launch) (bool, error) {
	return s.favorites.Toggle(ctx, launch)
}

// Favorites lists favorite snapshots in the order they were added
func (s *LaunchService) Favorites() []entity.Launch {
	return s.favorites.List()
}

// Search refreshes the cache if stale and returns the launches matching criteria.
// A failed refresh is not an error here as long as earlier data is available;
// the result then carries Status error and the stale data. Without any data the
// fetch error is returned.
func (s *LaunchService) Search(ctx context.Context, criteria entity.FilterCriteria) (SearchResult, error) {
	entry, err := s.cache.Refresh(ctx)
	if err != nil && !entry.HasData() {
		return SearchResult{Status: entry.Status, Err: err}, err
	}

	filtered := ApplyFilter(entry.Data, criteria)
	fav := make(map[string]bool, len(filtered))
	for _, l := range filtered {
		if s.favorites.IsFavorite(l.ID) {
			fav[l.ID] = true
		}
	}

	return SearchResult{
		Launches:  filtered,
		Favorite:  fav,
		Status:    entry.Status,
		FetchedAt: entry.FetchedAt,
		Total:     len(entry.Data),
		Err:       entry.Err,
	}, nil
}

// GetLaunch finds a launch by id in the cache, refreshing it if stale. When the
// cache does not hold the id, the favorite snapshot is returned instead.
func (s *LaunchService) GetLaunch(ctx context.Context, id string) (entity.Launch, error) {
	entry, err := s.cache.Refresh(ctx)
	if err != nil {
		s.logger.Warn("Serving launch lookup without fresh data", "launchID", id, "error", err)
	}
	for _, l := range entry.Data {
		if l.ID == id {
			return l, nil
		}
	}
	if l, ok := s.favorites.Get(id); ok {
		return l, nil
	}
	if err != nil && !entry.HasData() {
		return entity.Launch{}, err
	}
	return entity.Launch{}, fmt.Errorf("%w: %s", entity.ErrLaunchNotFound, id)
}

// ToggleByID toggles the launch with the given id, looked up like GetLaunch.
// It returns the resulting membership and the launch that was toggled.
func (s *LaunchService) ToggleByID(ctx context.Context, id string) (bool, entity.Launch, error) {
	launch, err := s.GetLaunch(ctx, id)
	if err != nil {
		return false, entity.Launch{}, err
	}
	favorite, err := s.favorites.Toggle(ctx, launch)
	return favorite, launch, err
}

// RunRefresher fetches launches every interval until ctx is done, regardless of
// freshness, so consumers keep hitting warm data when interval is close to the
// stale time. Failures are logged and retried on the next tick.
func (s *LaunchService) RunRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Launch refresher stopped")
			return
		case <-ticker.C:
			if _, err := s.ForceRefresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("Background launch refresh failed", "error", err)
			}
		}
	}
}
