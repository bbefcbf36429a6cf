package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFavorites(t *testing.T, repo *failingBlobRepo) (*FavoritesStore, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewMetricsWith(nil, "test")
	s := NewFavoritesStore(repo, "", logger.NewNopLogger(), m)
	require.NoError(t, s.Load(context.Background()))
	return s, m
}

func persistedIDs(t *testing.T, repo *failingBlobRepo) []string {
	t.Helper()
	var stored []entity.Launch
	require.NoError(t, json.Unmarshal(repo.raw(DefaultFavoritesKey), &stored))
	return ids(stored)
}

func TestFavoritesStore_LoadWithoutBlobIsEmpty(t *testing.T) {
	s, _ := newTestFavorites(t, newFailingBlobRepo())

	assert.Equal(t, 0, s.Count())
	assert.False(t, s.IsFavorite("a"))
	assert.Empty(t, s.List())
}

func TestFavoritesStore_ToggleIsSelfInverse(t *testing.T) {
	repo := newFailingBlobRepo()
	s, m := newTestFavorites(t, repo)
	a := threeLaunches()[0]

	fav, err := s.Toggle(context.Background(), a)
	require.NoError(t, err)
	assert.True(t, fav)
	assert.True(t, s.IsFavorite(a.ID))

	fav, err = s.Toggle(context.Background(), a)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.False(t, s.IsFavorite(a.ID))

	assert.Equal(t, []string{}, persistedIDs(t, repo))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FavoriteToggles.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FavoriteToggles.WithLabelValues("removed")))
}

func TestFavoritesStore_ToggleSequenceScenario(t *testing.T) {
	repo := newFailingBlobRepo()
	s, m := newTestFavorites(t, repo)
	records := threeLaunches()
	a, b := records[0], records[1]

	for _, l := range []entity.Launch{a, b, a} {
		_, err := s.Toggle(context.Background(), l)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"b"}, ids(s.List()))
	assert.Equal(t, []string{"b"}, persistedIDs(t, repo))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FavoritesTotal))
}

func TestFavoritesStore_DurabilityRoundTrip(t *testing.T) {
	repo := newFailingBlobRepo()
	first, _ := newTestFavorites(t, repo)
	records := threeLaunches()

	_, err := first.Toggle(context.Background(), records[2])
	require.NoError(t, err)
	_, err = first.Toggle(context.Background(), records[0])
	require.NoError(t, err)

	second := NewFavoritesStore(repo, DefaultFavoritesKey, logger.NewNopLogger(), nil)
	require.NoError(t, second.Load(context.Background()))

	assert.True(t, second.IsFavorite("c"))
	assert.True(t, second.IsFavorite("a"))
	assert.False(t, second.IsFavorite("b"))
	assert.Equal(t, []string{"c", "a"}, ids(second.List()))

	restored, ok := second.Get("c")
	require.True(t, ok)
	assert.Equal(t, records[2], restored)
}

func TestFavoritesStore_KeepsSnapshotNotReference(t *testing.T) {
	s, _ := newTestFavorites(t, newFailingBlobRepo())
	l := threeLaunches()[0]
	l.Success = boolPtr(true)

	_, err := s.Toggle(context.Background(), l)
	require.NoError(t, err)

	l.Name = "renamed upstream"
	*l.Success = false

	stored, ok := s.Get(l.ID)
	require.True(t, ok)
	assert.Equal(t, "Starlink 1", stored.Name)
	require.NotNil(t, stored.Success)
	assert.True(t, *stored.Success)
}

func TestFavoritesStore_WriteFailureKeepsOptimisticState(t *testing.T) {
	repo := newFailingBlobRepo()
	s, m := newTestFavorites(t, repo)
	repo.setFailures(false, true)
	a := threeLaunches()[0]

	fav, err := s.Toggle(context.Background(), a)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrStorageWrite)
	assert.True(t, fav)
	assert.True(t, s.IsFavorite(a.ID))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageErrorCount.WithLabelValues("save")))

	repo.setFailures(false, false)
	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, []string{"a"}, persistedIDs(t, repo))
}

func TestFavoritesStore_ReadFailureFallsBackToEmpty(t *testing.T) {
	repo := newFailingBlobRepo()
	require.NoError(t, repo.Set(context.Background(), DefaultFavoritesKey, []byte(`[{"id":"a","name":"x"}]`)))
	repo.setFailures(true, false)

	s := NewFavoritesStore(repo, "", logger.NewNopLogger(), nil)
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrStorageRead)
	assert.Equal(t, 0, s.Count())

	fav, err := s.Toggle(context.Background(), threeLaunches()[1])
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestFavoritesStore_MalformedBlobIsReadError(t *testing.T) {
	repo := newFailingBlobRepo()
	require.NoError(t, repo.Set(context.Background(), DefaultFavoritesKey, []byte(`{not json`)))

	s := NewFavoritesStore(repo, "", logger.NewNopLogger(), nil)
	err := s.Load(context.Background())
	assert.ErrorIs(t, err, entity.ErrStorageRead)
	assert.Equal(t, 0, s.Count())
}

func TestFavoritesStore_ToggleRequiresID(t *testing.T) {
	s, _ := newTestFavorites(t, newFailingBlobRepo())

	_, err := s.Toggle(context.Background(), entity.Launch{Name: "anonymous"})
	assert.ErrorIs(t, err, entity.ErrMalformedRecord)
}

func TestFavoritesStore_ConcurrentTogglesAreNeverLost(t *testing.T) {
	repo := newFailingBlobRepo()
	s, _ := newTestFavorites(t, repo)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Toggle(context.Background(), entity.Launch{ID: fmt.Sprintf("l-%02d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, s.Count())
	assert.Len(t, persistedIDs(t, repo), n)
	for i := 0; i < n; i++ {
		assert.True(t, s.IsFavorite(fmt.Sprintf("l-%02d", i)))
	}
}

func TestFavoritesStore_SecondToggleSeesFirstWhileItPersists(t *testing.T) {
	repo := newFailingBlobRepo()
	s, _ := newTestFavorites(t, repo)
	records := threeLaunches()

	gate := make(chan struct{})
	repo.mu.Lock()
	repo.setGate = gate
	repo.mu.Unlock()

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, err := s.Toggle(context.Background(), records[0])
		assert.NoError(t, err)
	}()

	// membership is visible before the write completes and reads do not block on it
	require.Eventually(t, func() bool { return s.IsFavorite("a") }, time.Second, time.Millisecond)

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		_, err := s.Toggle(context.Background(), records[1])
		assert.NoError(t, err)
	}()

	close(gate)
	<-firstDone
	<-secondDone

	assert.Equal(t, []string{"a", "b"}, persistedIDs(t, repo))
	assert.Equal(t, []string{"a", "b"}, ids(s.List()))
}
