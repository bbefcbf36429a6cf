package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"launchboard-service/internal/domain/repository"
	"launchboard-service/internal/interface/api"
	blobrepo "launchboard-service/internal/interface/repository"
	"launchboard-service/internal/interface/spacex"
	"launchboard-service/internal/usecase"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamLaunches = `[
  {"id": "a", "name": "Starlink 1", "date_utc": "2023-01-05T10:00:00.000Z", "upcoming": false, "success": true, "rocket": "r1", "launchpad": "p1", "links": {"patch": {"small": "https://img/a.png"}}},
  {"id": "b", "name": "CRS-28", "date_utc": "2023-06-10T15:35:00.000Z", "upcoming": false, "success": true, "rocket": "r1", "launchpad": "p2", "links": {"patch": {"small": null}}},
  {"id": "c", "name": "Crew-8", "date_utc": "2024-02-01T03:53:00.000Z", "upcoming": true, "success": null, "rocket": "r1", "launchpad": "p1", "links": {"patch": {}}}
]`

type brokenWrites struct {
	*blobrepo.MemoryBlobRepository
}

func (brokenWrites) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

type testServer struct {
	handler  http.Handler
	upstream *atomic.Bool
	calls    *atomic.Int32
}

func newTestServer(t *testing.T, storage repository.BlobRepository) testServer {
	t.Helper()

	healthy := &atomic.Bool{}
	healthy.Store(true)
	calls := &atomic.Int32{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !healthy.Load() {
			http.Error(w, "nope", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(upstreamLaunches))
	}))
	t.Cleanup(upstream.Close)

	log := logger.NewNopLogger()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsWith(reg, "test")

	source := spacex.NewLaunchSource(&http.Client{Timeout: time.Second}, upstream.URL, log, m)
	cache := usecase.NewLaunchCache(source, log, usecase.WithCacheMetrics(m))
	favorites := usecase.NewFavoritesStore(storage, "", log, m)
	svc := usecase.NewLaunchService(cache, favorites, log)
	require.NoError(t, svc.Load(context.Background()))

	h := NewRouter(
		api.NewLaunchHandler(svc, log),
		&api.HealthHandler{Storage: storage, Service: svc, Version: "test", Logger: log},
		log,
		Options{Gatherer: reg},
	)
	return testServer{handler: h, upstream: healthy, calls: calls}
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type listBody struct {
	Status   string `json:"status"`
	Total    int    `json:"total"`
	Count    int    `json:"count"`
	Error    string `json:"error"`
	Launches []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Favorite      bool   `json:"favorite"`
		PatchImageURL string `json:"patch_image_url"`
	} `json:"launches"`
}

func TestRouter_ListLaunchesFilters(t *testing.T) {
	srv := newTestServer(t, blobrepo.NewMemoryBlobRepository())

	rec := do(t, srv.handler, http.MethodGet, "/api/v1/launches?year=2023&status=past")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listBody
	decode(t, rec, &body)
	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, 3, body.Total)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Launches, 2)
	assert.Equal(t, "a", body.Launches[0].ID)
	assert.Equal(t, "https://img/a.png", body.Launches[0].PatchImageURL)
	assert.Equal(t, "b", body.Launches[1].ID)

	rec = do(t, srv.handler, http.MethodGet, "/api/v1/launches?search=crew")
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Count)
	assert.EqualValues(t, 1, srv.calls.Load(), "second request served from cache")
}

func TestRouter_ToggleAndListFavorites(t *testing.T) {
	srv := newTestServer(t, blobrepo.NewMemoryBlobRepository())

	rec := do(t, srv.handler, http.MethodPost, "/api/v1/favorites/b/toggle")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var toggled struct {
		ID       string `json:"id"`
		Favorite bool   `json:"favorite"`
	}
	decode(t, rec, &toggled)
	assert.Equal(t, "b", toggled.ID)
	assert.True(t, toggled.Favorite)

	rec = do(t, srv.handler, http.MethodGet, "/api/v1/favorites")
	require.Equal(t, http.StatusOK, rec.Code)
	var favorites []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decode(t, rec, &favorites)
	require.Len(t, favorites, 1)
	assert.Equal(t, "CRS-28", favorites[0].Name)

	rec = do(t, srv.handler, http.MethodGet, "/api/v1/launches")
	var body listBody
	decode(t, rec, &body)
	for _, l := range body.Launches {
		assert.Equal(t, l.ID == "b", l.Favorite, l.ID)
	}
}

func TestRouter_GetLaunch(t *testing.T) {
	srv := newTestServer(t, blobrepo.NewMemoryBlobRepository())

	rec := do(t, srv.handler, http.MethodGet, "/api/v1/launches/c")
	require.Equal(t, http.StatusOK, rec.Code)
	var l struct {
		Name     string `json:"name"`
		Upcoming bool   `json:"upcoming"`
		Success  *bool  `json:"success"`
	}
	decode(t, rec, &l)
	assert.Equal(t, "Crew-8", l.Name)
	assert.True(t, l.Upcoming)
	assert.Nil(t, l.Success)

	rec = do(t, srv.handler, http.MethodGet, "/api/v1/launches/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv.handler, http.MethodPost, "/api/v1/favorites/unknown/toggle")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UpstreamFailureWithoutData(t *testing.T) {
	srv := newTestServer(t, blobrepo.NewMemoryBlobRepository())
	srv.upstream.Store(false)

	rec := do(t, srv.handler, http.MethodGet, "/api/v1/launches")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = do(t, srv.handler, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var health struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decode(t, rec, &health)
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "error", health.Checks["launchCache"])
	assert.Equal(t, "ok", health.Checks["storage"])
}

func TestRouter_RefreshReportsUpstreamFailureButKeepsData(t *testing.T) {
	srv := newTestServer(t, blobrepo.NewMemoryBlobRepository())

	rec := do(t, srv.handler, http.MethodPost, "/api/v1/launches/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	srv.upstream.Store(false)
	rec = do(t, srv.handler, http.MethodPost, "/api/v1/launches/refresh")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body listBody
	decode(t, rec, &body)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, 3, body.Total)

	rec = do(t, srv.handler, http.MethodGet, "/api/v1/launches")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, 3, body.Count)
	assert.NotEmpty(t, body.Error)
}

func TestRouter_ToggleStorageFailureReportsState(t *testing.T) {
	srv := newTestServer(t, brokenWrites{blobrepo.NewMemoryBlobRepository()})

	rec := do(t, srv.handler, http.MethodPost, "/api/v1/favorites/a/toggle")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var toggled struct {
		Favorite bool   `json:"favorite"`
		Error    string `json:"error"`
	}
	decode(t, rec, &toggled)
	assert.True(t, toggled.Favorite)
	assert.Contains(t, toggled.Error, "disk full")
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, blobrepo.NewMemoryBlobRepository())
	do(t, srv.handler, http.MethodGet, "/api/v1/launches")

	rec := do(t, srv.handler, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = do(t, srv.handler, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_launch_fetches_total")
}
