package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/internal/domain/repository"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long a successful fetch is served without refetching
const DefaultStaleTime = 5 * time.Minute

const launchesFlightKey = "launches"

// LaunchCache wraps a LaunchSource with time-based staleness and request de-duplication.
// It holds the process-wide CacheEntry; every read and write goes through mu.
type LaunchCache struct {
	source    repository.LaunchSource
	staleTime time.Duration
	now       func() time.Time
	logger    logger.Logger
	metrics   *metrics.Metrics

	group singleflight.Group

	mu    sync.RWMutex
	entry entity.CacheEntry
	// gen counts Invalidate calls. stale is cleared only by a fetch that started
	// in the current generation; dataGen is the generation of the data held.
	gen     uint64
	dataGen uint64
	stale   bool
}

// CacheOption configures a LaunchCache
type CacheOption func(*LaunchCache)

// WithStaleTime overrides DefaultStaleTime. Non-positive values mean every refresh fetches.
func WithStaleTime(d time.Duration) CacheOption {
	return func(c *LaunchCache) { c.staleTime = d }
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) CacheOption {
	return func(c *LaunchCache) { c.now = now }
}

// WithCacheMetrics records fetch outcomes on m
func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *LaunchCache) { c.metrics = m }
}

// NewLaunchCache creates an idle cache in front of source
func NewLaunchCache(source repository.LaunchSource, logger logger.Logger, opts ...CacheOption) *LaunchCache {
	c := &LaunchCache{
		source:    source,
		staleTime: DefaultStaleTime,
		now:       time.Now,
		logger:    logger,
		entry:     entity.CacheEntry{Status: entity.CacheStatusIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetLaunches returns a copy of the current cache state without contacting the source
func (c *LaunchCache) GetLaunches() entity.CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *LaunchCache) snapshotLocked() entity.CacheEntry {
	e := c.entry
	if c.entry.Data != nil {
		e.Data = make([]entity.Launch, len(c.entry.Data))
		copy(e.Data, c.entry.Data)
	}
	return e
}

// Invalidate marks the cached data stale so the next Refresh contacts the source.
// The data itself stays visible until a fetch replaces it.
func (c *LaunchCache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.stale = true
	c.mu.Unlock()
}

// Refresh makes sure the cache holds fresh data. Within the staleness window it
// returns the cached entry without contacting the source. Otherwise it performs a
// single fetch attempt; concurrent callers join the attempt already in flight.
//
// A fetch that started before the latest Invalidate is not joined; a new one is
// started instead.
//
// The fetch is detached from ctx: a caller giving up returns early with ctx.Err()
// but the fetch still completes and updates the cache for everyone else.
// On failure the returned entry has status error and keeps the previous data.
func (c *LaunchCache) Refresh(ctx context.Context) (entity.CacheEntry, error) {
	fresh, gen := c.freshness()
	if fresh {
		if c.metrics != nil {
			c.metrics.CacheHits.Inc()
		}
		return c.GetLaunches(), nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	key := launchesFlightKey + ":" + strconv.FormatUint(gen, 10)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// a flight that finished between freshness and DoChan already did the work
		if fresh, _ := c.freshness(); fresh {
			return nil, nil
		}
		return nil, c.fetch(fetchCtx, gen)
	})

	select {
	case <-ctx.Done():
		return c.GetLaunches(), ctx.Err()
	case res := <-ch:
		return c.GetLaunches(), res.Err
	}
}

// freshness reports whether the entry can be served as is, and the current
// invalidation generation.
func (c *LaunchCache) freshness() (bool, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.stale && !c.entry.IsStale(c.now(), c.staleTime), c.gen
}

// fetch performs one remote call started in generation gen and applies its
// outcome to the entry. An outcome older than the data already held is dropped.
func (c *LaunchCache) fetch(ctx context.Context, gen uint64) error {
	c.mu.Lock()
	c.entry.Status = entity.CacheStatusLoading
	c.entry.Err = nil
	c.mu.Unlock()

	start := time.Now()
	launches, err := c.source.FetchLaunches(ctx)
	if c.metrics != nil {
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		err = wrapFetchErr(err)
		if c.metrics != nil {
			c.metrics.LaunchFetches.WithLabelValues("failure").Inc()
		}
		if gen < c.dataGen {
			c.logger.Warn("Ignoring failure of superseded launch fetch", "error", err)
			return err
		}
		c.entry.Status = entity.CacheStatusError
		c.entry.Err = err
		c.logger.Error("Failed to refresh launches",
			"error", err,
			"keptRecords", len(c.entry.Data),
			"lastFetchedAt", c.entry.FetchedAt)
		return err
	}

	if c.metrics != nil {
		c.metrics.LaunchFetches.WithLabelValues("success").Inc()
	}
	if gen < c.dataGen {
		c.logger.Debug("Dropping result of superseded launch fetch", "records", len(launches))
		return nil
	}

	if launches == nil {
		launches = []entity.Launch{}
	}
	c.entry = entity.CacheEntry{
		Data:      launches,
		FetchedAt: c.now(),
		Status:    entity.CacheStatusReady,
	}
	c.dataGen = gen
	c.stale = gen != c.gen
	if c.metrics != nil {
		c.metrics.CachedLaunches.Set(float64(len(launches)))
	}
	c.logger.Info("Launch cache refreshed", "records", len(launches))
	return nil
}

func wrapFetchErr(err error) error {
	if errors.Is(err, entity.ErrFetch) {
		return err
	}
	return fmt.Errorf("%w: %v", entity.ErrFetch, err)
}
