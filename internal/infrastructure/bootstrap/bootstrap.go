package bootstrap

import (
	"context"
	"net/http"

	"launchboard-service/internal/domain/repository"
	"launchboard-service/internal/infrastructure/config"
	"launchboard-service/internal/infrastructure/oauth"
	"launchboard-service/internal/infrastructure/storage"
	"launchboard-service/internal/interface/spacex"
	"launchboard-service/internal/usecase"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"
)

// App is the wired launch data layer shared by the server and the CLI
type App struct {
	Service *usecase.LaunchService
	Storage repository.BlobRepository
}

// New wires the launch source, cache, favorites store and service from cfg.
// Favorites are not loaded; call App.Service.Load once the caller is ready.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, m *metrics.Metrics) (*App, error) {
	repo, err := storage.NewBlobRepository(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	auth := oauth.NewAPIAuth(cfg.LaunchAPIToken, cfg.LaunchAPIClientID, cfg.LaunchAPIClientSecret, cfg.LaunchAPITokenURL, log)
	httpClient := oauth.WrapClient(&http.Client{Timeout: cfg.LaunchAPITimeout}, auth.GetTokenSource(ctx))

	source := spacex.NewLaunchSource(httpClient, cfg.LaunchAPIURL, log, m)
	cache := usecase.NewLaunchCache(source, log,
		usecase.WithStaleTime(cfg.LaunchStaleTime),
		usecase.WithCacheMetrics(m),
	)
	favorites := usecase.NewFavoritesStore(repo, cfg.FavoritesKey, log, m)

	return &App{
		Service: usecase.NewLaunchService(cache, favorites, log),
		Storage: repo,
	}, nil
}

// Close releases the favorites storage
func (a *App) Close(ctx context.Context) error {
	return a.Storage.Close(ctx)
}
